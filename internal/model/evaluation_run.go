package model

import (
	"time"
)

// EvaluationRun records that the evaluator already made a missed-or-not
// determination for a goal on a local date. Purely a scan-skip optimization;
// correctness comes from the check_ins uniqueness constraint.
type EvaluationRun struct {
	GoalID      string    `db:"goal_id"`
	Date        string    `db:"date"`
	AttemptedAt time.Time `db:"attempted_at"`
}
