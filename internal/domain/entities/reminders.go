package entities

// ReminderPayload carries what a streak reminder needs to say.
type ReminderPayload struct {
	UserName      string
	CurrentStreak int // streak that will be lost if nothing is logged today
}
