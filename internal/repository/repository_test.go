package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/podstreak/podstreak/internal/db"
	"github.com/podstreak/podstreak/internal/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	return database
}

func seedUser(t *testing.T, database *sqlx.DB) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		Name:      "Test User",
		CreatedAt: time.Now(),
	}
	require.NoError(t, NewUserRepository(database).Create(user))

	return user
}

func seedGoal(t *testing.T, database *sqlx.DB, owner *model.User, mutate func(*model.Goal)) *model.Goal {
	t.Helper()

	now := time.Now()
	goal := &model.Goal{
		ID:             uuid.New().String(),
		OwnerUserID:    owner.ID,
		PodID:          "pod-1",
		Title:          "Morning run",
		FrequencyType:  model.FrequencyDaily,
		DeadlineHour:   20,
		DeadlineMinute: 0,
		Timezone:       "UTC",
		CurrentStreak:  5,
		LongestStreak:  9,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if mutate != nil {
		mutate(goal)
	}
	require.NoError(t, NewGoalRepository(database).Create(goal))

	return goal
}
