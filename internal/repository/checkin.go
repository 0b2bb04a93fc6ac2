package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/podstreak/podstreak/internal/model"
)

var (
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrCheckInExists   = errors.New("check-in already exists for this goal and date")
)

// InsertResult reports the outcome of a conditional insert.
type InsertResult int

const (
	InsertCreated InsertResult = iota
	InsertAlreadyExists
)

type CheckInRepository interface {
	Create(checkIn *model.CheckIn) error
	ByGoalAndDate(goalID, date string) (*model.CheckIn, error)
	InsertMissedIfAbsent(goalID, userID, date string) (InsertResult, error)
}

type checkInRepository struct {
	db *sqlx.DB
}

func NewCheckInRepository(db *sqlx.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

// Create inserts a user-authored check-in (completed or skipped). The
// (goal_id, date) uniqueness constraint turns a duplicate into
// ErrCheckInExists.
func (r *checkInRepository) Create(checkIn *model.CheckIn) error {
	query := `INSERT INTO check_ins (id, goal_id, user_id, date, status, comment, proof_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		checkIn.ID,
		checkIn.GoalID,
		checkIn.UserID,
		checkIn.Date,
		checkIn.Status,
		checkIn.Comment,
		checkIn.ProofURL,
		checkIn.CreatedAt,
	)
	if err != nil {
		// Works for both SQLite and PostgreSQL
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrCheckInExists
		}
		return err
	}

	return nil
}

func (r *checkInRepository) ByGoalAndDate(goalID, date string) (*model.CheckIn, error) {
	checkIn := &model.CheckIn{}
	query := `SELECT * FROM check_ins WHERE goal_id = $1 AND date = $2`

	err := r.db.Get(checkIn, query, goalID, date)
	if err == sql.ErrNoRows {
		return nil, ErrCheckInNotFound
	}

	return checkIn, err
}

// InsertMissedIfAbsent writes a missed row for (goalID, date) only if no row
// exists yet. Existence check and insert are a single statement, so a
// concurrent user check-in or a second evaluator instance that commits first
// simply wins: the insert affects zero rows and InsertAlreadyExists comes
// back. Never updates an existing row.
func (r *checkInRepository) InsertMissedIfAbsent(goalID, userID, date string) (InsertResult, error) {
	query := `INSERT INTO check_ins (id, goal_id, user_id, date, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (goal_id, date) DO NOTHING`

	result, err := r.db.Exec(query,
		uuid.New().String(),
		goalID,
		userID,
		date,
		model.CheckInStatusMissed,
		time.Now(),
	)
	if err != nil {
		return InsertAlreadyExists, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return InsertAlreadyExists, err
	}

	if rows == 0 {
		return InsertAlreadyExists, nil
	}

	return InsertCreated, nil
}
