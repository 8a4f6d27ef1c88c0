package entities

import (
	"fmt"
	"time"
)

// User represents a tracker user. Users coming from the Telegram bot have
// their chat attached so reminders can reach them.
type User struct {
	ID             string
	Email          string
	Name           string
	TelegramChatID *int64
	CreatedAt      time.Time
}

func NewUser(id, email, name string, now time.Time) *User {
	return &User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: now.UTC(),
	}
}

// TelegramUserID maps a Telegram account onto a tracker user id.
func TelegramUserID(telegramID int64) string {
	return fmt.Sprintf("tg:%d", telegramID)
}
