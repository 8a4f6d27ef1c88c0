package telegram

import "github.com/aliskhannn/lingua-tracker/internal/domain/entities"

// SendReminder delivers a streak reminder; it makes the handler the
// notifier of the reminder service.
func (h *Handler) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	return h.send(newMessage(chatID, buildReminderNotification(payload)))
}
