package entities

import "time"

// Level is a self-assessed proficiency level.
type Level string

const (
	LevelBeginner          Level = "BEGINNER"
	LevelElementary        Level = "ELEMENTARY"
	LevelIntermediate      Level = "INTERMEDIATE"
	LevelUpperIntermediate Level = "UPPER_INTERMEDIATE"
	LevelAdvanced          Level = "ADVANCED"
	LevelMastery           Level = "MASTERY"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelElementary, LevelIntermediate,
		LevelUpperIntermediate, LevelAdvanced, LevelMastery:
		return true
	}
	return false
}

// Language is a catalog entry shared across users. Code is a unique
// two-letter code.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// LanguageProgress is a user's enrollment in a language.
type LanguageProgress struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	LanguageID   string    `json:"languageId"`
	Language     Language  `json:"language"`
	Level        Level     `json:"level"`
	TargetLevel  Level     `json:"targetLevel"`
	TotalMinutes int       `json:"totalMinutes"` // non-archived sessions, derived on read
	CreatedAt    time.Time `json:"createdAt"`
}

// NewLanguageProgress enrolls a user at the given level, which is also the
// initial target level.
func NewLanguageProgress(id, userID string, lang Language, level Level, now time.Time) *LanguageProgress {
	return &LanguageProgress{
		ID:          id,
		UserID:      userID,
		LanguageID:  lang.ID,
		Language:    lang,
		Level:       level,
		TargetLevel: level,
		CreatedAt:   now.UTC(),
	}
}
