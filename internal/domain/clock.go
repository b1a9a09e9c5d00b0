package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("invalid time of day")

// ParseClock combines an HH:MM:SS time of day with the calendar day of day.
func ParseClock(day time.Time, s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}

	limits := [3]int{24, 60, 60}
	var hms [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n >= limits[i] {
			return time.Time{}, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
		}
		hms[i] = n
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, hms[0], hms[1], hms[2], 0, day.Location()), nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "None"
	}
	return t.Format(time.TimeOnly)
}
