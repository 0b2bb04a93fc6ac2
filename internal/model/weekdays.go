package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekdaySet is a set of weekdays stored as a comma-separated column
// ("0" = Sunday, matching time.Weekday). Empty means no days.
type WeekdaySet []time.Weekday

func (w WeekdaySet) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

func (w WeekdaySet) Value() (driver.Value, error) {
	if len(w) == 0 {
		return "", nil
	}
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ","), nil
}

func (w *WeekdaySet) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into WeekdaySet", src)
	}

	if s == "" {
		*w = nil
		return nil
	}

	var days WeekdaySet
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return fmt.Errorf("invalid weekday %q in set %q", part, s)
		}
		days = append(days, time.Weekday(n))
	}

	*w = days
	return nil
}
