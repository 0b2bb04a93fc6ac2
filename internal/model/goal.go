package model

import (
	"time"
)

// Frequency types form a closed set. Anything else on a goal row is a
// configuration error and the evaluator skips the goal rather than guessing.
const (
	FrequencyDaily        = "daily"
	FrequencyWeekly       = "weekly"
	FrequencySpecificDays = "specific_days"
)

type Goal struct {
	ID             string     `db:"id"`
	OwnerUserID    string     `db:"owner_user_id"`
	PodID          string     `db:"pod_id"`
	Title          string     `db:"title"`
	FrequencyType  string     `db:"frequency_type"`
	FrequencyDays  WeekdaySet `db:"frequency_days"`
	DeadlineHour   int        `db:"deadline_hour"`
	DeadlineMinute int        `db:"deadline_minute"`
	Timezone       string     `db:"timezone"`
	RequiresProof  bool       `db:"requires_proof"`
	IsArchived     bool       `db:"is_archived"`
	CurrentStreak  int        `db:"current_streak"`
	LongestStreak  int        `db:"longest_streak"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
