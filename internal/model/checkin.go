package model

import (
	"time"
)

// DateLayout is the storage format for check-in calendar dates.
const DateLayout = "2006-01-02"

const (
	CheckInStatusCompleted = "completed"
	CheckInStatusMissed    = "missed"
	CheckInStatusSkipped   = "skipped"
)

// CheckIn is one row of the accountability ledger. The (goal_id, date) pair
// is unique; date is a calendar date in the goal's timezone, stored as
// "2006-01-02". Missed rows are written only by the deadline evaluator and
// are never updated afterwards.
type CheckIn struct {
	ID        string    `db:"id"`
	GoalID    string    `db:"goal_id"`
	UserID    string    `db:"user_id"`
	Date      string    `db:"date"`
	Status    string    `db:"status"`
	Comment   *string   `db:"comment"`
	ProofURL  *string   `db:"proof_url"`
	CreatedAt time.Time `db:"created_at"`
}
