package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LoadLocation resolves the location used for calendar-day boundaries.
// Accepted forms: "" / "UTC" / "GMT", IANA names such as "Europe/Berlin",
// and fixed offsets such as "UTC+3", "UTC-05:30" or "+02:00".
func LoadLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	switch strings.ToUpper(tz) {
	case "", "UTC", "GMT", "ETC/UTC":
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset, err := parseOffset(tz)
	if err != nil {
		return nil, fmt.Errorf("unsupported timezone %q: %w", tz, err)
	}

	return time.FixedZone(offsetName(offset), offset), nil
}

func parseOffset(tz string) (int, error) {
	s := tz
	if len(s) >= 3 && strings.EqualFold(s[:3], "UTC") {
		s = strings.TrimSpace(s[3:])
	}
	if s == "" {
		return 0, nil
	}

	var sign int
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, ErrValidation
	}

	hh, mm, found := strings.Cut(s[1:], ":")
	if !found {
		mm = "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, ErrValidation
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, ErrValidation
	}
	if h < 0 || h > 14 || m < 0 || m >= 60 {
		return 0, ErrValidation
	}

	return sign * (h*3600 + m*60), nil
}

func offsetName(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, (offset%3600)/60)
}
