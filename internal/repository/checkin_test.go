package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstreak/podstreak/internal/model"
)

func TestInsertMissedIfAbsent(t *testing.T) {
	database := testDB(t)
	user := seedUser(t, database)
	goal := seedGoal(t, database, user, nil)
	repo := NewCheckInRepository(database)

	result, err := repo.InsertMissedIfAbsent(goal.ID, user.ID, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, InsertCreated, result)

	checkIn, err := repo.ByGoalAndDate(goal.ID, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, model.CheckInStatusMissed, checkIn.Status)
	assert.Equal(t, user.ID, checkIn.UserID)

	// Re-running is a no-op, not an error
	result, err = repo.InsertMissedIfAbsent(goal.ID, user.ID, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, InsertAlreadyExists, result)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM check_ins WHERE goal_id = $1`, goal.ID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInsertMissedIfAbsentLosesToUserCheckIn(t *testing.T) {
	database := testDB(t)
	user := seedUser(t, database)
	goal := seedGoal(t, database, user, nil)
	repo := NewCheckInRepository(database)

	completed := &model.CheckIn{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		UserID:    user.ID,
		Date:      "2025-07-01",
		Status:    model.CheckInStatusCompleted,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(completed))

	// The evaluator's conditional insert must lose gracefully
	result, err := repo.InsertMissedIfAbsent(goal.ID, user.ID, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, InsertAlreadyExists, result)

	checkIn, err := repo.ByGoalAndDate(goal.ID, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, model.CheckInStatusCompleted, checkIn.Status)
}

func TestCreateDuplicateDate(t *testing.T) {
	database := testDB(t)
	user := seedUser(t, database)
	goal := seedGoal(t, database, user, nil)
	repo := NewCheckInRepository(database)

	first := &model.CheckIn{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		UserID:    user.ID,
		Date:      "2025-07-01",
		Status:    model.CheckInStatusCompleted,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(first))

	second := &model.CheckIn{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		UserID:    user.ID,
		Date:      "2025-07-01",
		Status:    model.CheckInStatusSkipped,
		CreatedAt: time.Now(),
	}
	assert.ErrorIs(t, repo.Create(second), ErrCheckInExists)
}

func TestByGoalAndDateNotFound(t *testing.T) {
	database := testDB(t)
	repo := NewCheckInRepository(database)

	_, err := repo.ByGoalAndDate("nope", "2025-07-01")
	assert.ErrorIs(t, err, ErrCheckInNotFound)
}
