package entities

import "time"

// GoalStatus is derived from accumulated progress; the stored value is a
// cache of DeriveGoalStatus.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "NOT_STARTED"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
)

// Goal is a target of accumulated minutes for a language and activity type.
type Goal struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	LanguageID    string       `json:"languageId"`
	LanguageName  string       `json:"languageName"`
	ActivityType  ActivityType `json:"activityType"`
	TargetMinutes int          `json:"target"`
	Deadline      *time.Time   `json:"deadline"`
	Status        GoalStatus   `json:"status"`
	Archived      bool         `json:"archived"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// DeriveGoalStatus maps progress against target onto a status.
func DeriveGoalStatus(progress, target int) GoalStatus {
	switch {
	case progress >= target:
		return GoalCompleted
	case progress > 0:
		return GoalInProgress
	default:
		return GoalNotStarted
	}
}

// Percent returns progress as a share of the target, capped at 100.
func (g Goal) Percent(progress int) float64 {
	if g.TargetMinutes <= 0 {
		return 100
	}
	p := float64(progress) / float64(g.TargetMinutes) * 100
	if p > 100 {
		p = 100
	}
	return p
}
