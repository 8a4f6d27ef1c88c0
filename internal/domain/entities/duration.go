package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToMinutes converts hours and minutes into total minutes. Bounds are the
// caller's concern.
func ToMinutes(hours, minutes int) int {
	return hours*60 + minutes
}

// FromMinutes splits a non-negative total into hours and minutes.
func FromMinutes(total int) (hours, minutes int) {
	return total / 60, total % 60
}

// FormatMinutes renders a total as "1h 30m", "1h 0m" or "45m".
func FormatMinutes(total int) string {
	h, m := FromMinutes(total)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// ParseDuration reads user input like "90", "45m", "2h", "1h30m" or
// "1h 30m" into minutes.
func ParseDuration(s string) (int, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return 0, fmt.Errorf("empty duration: %w", ErrValidation)
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be greater than 0: %w", ErrValidation)
		}
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, ErrValidation)
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("duration %q is not a whole number of minutes: %w", s, ErrValidation)
	}

	total := int(d / time.Minute)
	if total <= 0 {
		return 0, fmt.Errorf("duration must be greater than 0: %w", ErrValidation)
	}

	return total, nil
}
