package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// EvaluationRunRepository tracks which (goal, date) pairs the evaluator has
// already resolved. It lets overlapping ticks skip redundant work; the
// check_ins uniqueness constraint is what actually guarantees exactly-once,
// so every method here is best-effort.
type EvaluationRunRepository interface {
	Record(goalID, date string, attemptedAt time.Time) error
	Attempted(goalID, date string) (bool, error)
}

type evaluationRunRepository struct {
	db *sqlx.DB
}

func NewEvaluationRunRepository(db *sqlx.DB) EvaluationRunRepository {
	return &evaluationRunRepository{db: db}
}

func (r *evaluationRunRepository) Record(goalID, date string, attemptedAt time.Time) error {
	query := `INSERT INTO evaluation_runs (goal_id, date, attempted_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (goal_id, date) DO NOTHING`

	_, err := r.db.Exec(query, goalID, date, attemptedAt)
	return err
}

func (r *evaluationRunRepository) Attempted(goalID, date string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM evaluation_runs WHERE goal_id = $1 AND date = $2`

	err := r.db.QueryRow(query, goalID, date).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
