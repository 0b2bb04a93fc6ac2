package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/podstreak/podstreak/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	Active() ([]*model.Goal, error)
	ResetStreak(goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, owner_user_id, pod_id, title, frequency_type, frequency_days,
	              deadline_hour, deadline_minute, timezone, requires_proof, is_archived,
	              current_streak, longest_streak, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.OwnerUserID,
		goal.PodID,
		goal.Title,
		goal.FrequencyType,
		goal.FrequencyDays,
		goal.DeadlineHour,
		goal.DeadlineMinute,
		goal.Timezone,
		goal.RequiresProof,
		goal.IsArchived,
		goal.CurrentStreak,
		goal.LongestStreak,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

// Active returns every non-archived goal. Timezone projection and due
// filtering happen in the evaluator so the query stays portable across
// sqlite and postgres.
func (r *goalRepository) Active() ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE is_archived = false ORDER BY id ASC`

	err := r.db.Select(&goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// ResetStreak zeroes current_streak. longest_streak is a historical
// high-water mark and is never touched here.
func (r *goalRepository) ResetStreak(goalID string) error {
	query := `UPDATE goals SET current_streak = 0, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, time.Now(), goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
