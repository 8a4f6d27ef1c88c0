package entities

import "time"

// StudySession is a single logged practice event. Duration is in minutes.
type StudySession struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	LanguageID   string       `json:"languageId"`
	LanguageName string       `json:"languageName"`
	Type         ActivityType `json:"type"`
	Duration     int          `json:"duration"`
	Date         time.Time    `json:"date"`
	Description  string       `json:"description"`
	Difficulty   *Difficulty  `json:"difficulty"`
	Archived     bool         `json:"archived"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// SameDay reports whether two instants fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
