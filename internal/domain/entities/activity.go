package entities

import "strings"

// ActivityType is the category of a study session.
type ActivityType string

const (
	ActivityReading    ActivityType = "READING"
	ActivityListening  ActivityType = "LISTENING"
	ActivitySpeaking   ActivityType = "SPEAKING"
	ActivityWriting    ActivityType = "WRITING"
	ActivityVocabulary ActivityType = "VOCABULARY"
	ActivityGrammar    ActivityType = "GRAMMAR"
	ActivityImmersion  ActivityType = "IMMERSION"
	ActivityOther      ActivityType = "OTHER"
)

// ActivityTypes lists every activity type in display order.
var ActivityTypes = []ActivityType{
	ActivityReading,
	ActivityListening,
	ActivitySpeaking,
	ActivityWriting,
	ActivityVocabulary,
	ActivityGrammar,
	ActivityImmersion,
	ActivityOther,
}

func (a ActivityType) Valid() bool {
	for _, t := range ActivityTypes {
		if a == t {
			return true
		}
	}
	return false
}

// ParseActivityType accepts any casing, e.g. "reading" or "Reading".
func ParseActivityType(s string) (ActivityType, bool) {
	a := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	return a, a.Valid()
}

// Difficulty is the optional perceived difficulty of a session.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
