// Package schedule holds the timezone and frequency arithmetic for goal
// deadlines. Everything here is pure: callers pass the tick instant in and
// no function reads the wall clock, so behavior is fully deterministic.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/podstreak/podstreak/internal/model"
)

var (
	ErrUnknownFrequency = errors.New("unknown frequency type")
	ErrEmptyDaySet      = errors.New("frequency requires at least one weekday")
)

// Occurrence identifies a deadline that elapsed inside the lookback window.
type Occurrence struct {
	// Date is the goal-local calendar date the deadline belongs to.
	Date string
	// At is the exact instant the deadline passed.
	At time.Time
}

// Due reports whether the goal's deadline elapsed within (nowUTC-lookback,
// nowUTC] in the goal's own timezone, and for which local date. Both the
// current and previous local dates are considered so that deadlines close to
// midnight resolve correctly when a tick lands just after the date rolls
// over, including across DST transitions.
//
// A malformed timezone, deadline, or frequency configuration returns an
// error; the goal is never silently treated as not due.
func Due(nowUTC time.Time, lookback time.Duration, goal *model.Goal) (Occurrence, bool, error) {
	loc, err := time.LoadLocation(goal.Timezone)
	if err != nil {
		return Occurrence{}, false, fmt.Errorf("invalid timezone %q: %w", goal.Timezone, err)
	}

	if goal.DeadlineHour < 0 || goal.DeadlineHour > 23 || goal.DeadlineMinute < 0 || goal.DeadlineMinute > 59 {
		return Occurrence{}, false, fmt.Errorf("invalid deadline %02d:%02d", goal.DeadlineHour, goal.DeadlineMinute)
	}

	local := nowUTC.In(loc)
	windowStart := nowUTC.Add(-lookback)

	// Most recent local date first.
	for daysBack := 0; daysBack <= 1; daysBack++ {
		day := local.AddDate(0, 0, -daysBack)

		scheduled, err := ScheduledOn(goal, day.Weekday())
		if err != nil {
			return Occurrence{}, false, err
		}
		if !scheduled {
			continue
		}

		// time.Date with the goal's location means "23:59" is always
		// 23:59 local, whatever the UTC offset is that day.
		deadline := time.Date(day.Year(), day.Month(), day.Day(), goal.DeadlineHour, goal.DeadlineMinute, 0, 0, loc)
		if deadline.After(windowStart) && !deadline.After(nowUTC) {
			return Occurrence{Date: day.Format(model.DateLayout), At: deadline}, true, nil
		}
	}

	return Occurrence{}, false, nil
}

// ScheduledOn reports whether the goal's frequency includes the given
// weekday. The frequency set is closed; an unrecognized value is an error so
// a bad row can never silently no-op forever.
func ScheduledOn(goal *model.Goal, day time.Weekday) (bool, error) {
	switch goal.FrequencyType {
	case model.FrequencyDaily:
		return true, nil
	case model.FrequencyWeekly, model.FrequencySpecificDays:
		if len(goal.FrequencyDays) == 0 {
			return false, fmt.Errorf("%w: %s", ErrEmptyDaySet, goal.FrequencyType)
		}
		return goal.FrequencyDays.Contains(day), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownFrequency, goal.FrequencyType)
	}
}

// LocalDate projects an instant into the goal's timezone and formats its
// calendar date. Used by callers that need "today" for a goal outside the
// due computation (e.g. seeding a completed check-in).
func LocalDate(nowUTC time.Time, timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return nowUTC.In(loc).Format(model.DateLayout), nil
}
