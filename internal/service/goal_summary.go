package service

import "github.com/aliskhannn/lingua-tracker/internal/domain/entities"

// GoalSummary aggregates a goal collection. CurrentStreak is filled in by
// the caller.
type GoalSummary struct {
	ActiveGoals    int     `json:"activeGoals"`
	CompletedGoals int     `json:"completedGoals"`
	SuccessRate    float64 `json:"successRate"`
	CurrentStreak  int     `json:"currentStreak"`
}

func Summarize(goals []GoalWithProgress) GoalSummary {
	var sum GoalSummary
	for _, g := range goals {
		if g.Status == entities.GoalCompleted {
			sum.CompletedGoals++
		} else {
			sum.ActiveGoals++
		}
	}

	if len(goals) > 0 {
		sum.SuccessRate = float64(sum.CompletedGoals) / float64(len(goals)) * 100
	}

	return sum
}
