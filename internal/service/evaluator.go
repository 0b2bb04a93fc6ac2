package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/podstreak/podstreak/internal/model"
	"github.com/podstreak/podstreak/internal/repository"
	"github.com/podstreak/podstreak/internal/schedule"
)

// EvaluatorService is the deadline evaluator. On every tick it scans active
// goals, projects the tick instant into each goal's timezone, and ensures a
// terminal check-in exists for any goal whose deadline just passed without
// one. All writes are conditional inserts, so overlapping ticks, evaluator
// restarts and concurrent user check-ins converge on exactly one row per
// (goal, date).
type EvaluatorService struct {
	goals       repository.GoalRepository
	checkIns    repository.CheckInRepository
	runs        repository.EvaluationRunRepository
	dispatcher  Dispatcher
	lookback    time.Duration
	concurrency int
}

func NewEvaluatorService(
	goals repository.GoalRepository,
	checkIns repository.CheckInRepository,
	runs repository.EvaluationRunRepository,
	dispatcher Dispatcher,
	lookback time.Duration,
	concurrency int,
) *EvaluatorService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &EvaluatorService{
		goals:       goals,
		checkIns:    checkIns,
		runs:        runs,
		dispatcher:  dispatcher,
		lookback:    lookback,
		concurrency: concurrency,
	}
}

// RunSummary reports what one tick did.
type RunSummary struct {
	Goals        int // active goals scanned
	Due          int // goals whose deadline elapsed in the window
	Missed       int // missed rows written this tick
	Resolved     int // due goals already resolved by a check-in or earlier tick
	ConfigErrors int // goals skipped for bad timezone/deadline/frequency
	Errors       int // transient per-goal failures, retried next tick
}

type goalOutcome int

const (
	outcomeNotDue goalOutcome = iota
	outcomeMissed
	outcomeResolved
	outcomeConfigError
	outcomeError
)

// Run evaluates one scheduler tick. nowUTC is the tick instant and the only
// clock the evaluation ever sees. A failure listing goals fails the whole
// run; anything after that is per-goal and never aborts the batch.
func (s *EvaluatorService) Run(ctx context.Context, nowUTC time.Time) (RunSummary, error) {
	goals, err := s.goals.Active()
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to list active goals: %w", err)
	}

	var (
		mu      sync.Mutex
		summary RunSummary
	)
	summary.Goals = len(goals)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for _, goal := range goals {
		goal := goal
		g.Go(func() error {
			// Shutdown mid-batch: committed work stays committed,
			// the rest is picked up on the next tick.
			if ctx.Err() != nil {
				return nil
			}

			outcome := s.evaluateGoal(nowUTC, goal)

			mu.Lock()
			switch outcome {
			case outcomeMissed:
				summary.Due++
				summary.Missed++
			case outcomeResolved:
				summary.Due++
				summary.Resolved++
			case outcomeConfigError:
				summary.ConfigErrors++
			case outcomeError:
				summary.Errors++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("evaluation tick complete",
		"now", nowUTC.Format(time.RFC3339),
		"goals", summary.Goals,
		"due", summary.Due,
		"missed", summary.Missed,
		"resolved", summary.Resolved,
		"config_errors", summary.ConfigErrors,
		"errors", summary.Errors,
	)

	return summary, nil
}

func (s *EvaluatorService) evaluateGoal(nowUTC time.Time, goal *model.Goal) goalOutcome {
	occ, due, err := schedule.Due(nowUTC, s.lookback, goal)
	if err != nil {
		// Needs manual data correction; logged at Error so it alerts.
		slog.Error("goal has invalid schedule configuration", "goal_id", goal.ID, "error", err)
		return outcomeConfigError
	}
	if !due {
		return outcomeNotDue
	}

	// Bookkeeping shortcut only. A false negative here just means one
	// redundant conditional insert.
	attempted, err := s.runs.Attempted(goal.ID, occ.Date)
	if err == nil && attempted {
		return outcomeResolved
	}

	result, err := s.checkIns.InsertMissedIfAbsent(goal.ID, goal.OwnerUserID, occ.Date)
	if err != nil {
		// Goal stays due until a terminal row exists, so the next tick
		// retries this date.
		slog.Warn("failed to persist missed check-in", "goal_id", goal.ID, "date", occ.Date, "error", err)
		return outcomeError
	}

	if result == repository.InsertCreated {
		err = s.goals.ResetStreak(goal.ID)
		if err != nil {
			slog.Error("missed check-in recorded but streak reset failed", "goal_id", goal.ID, "date", occ.Date, "error", err)
		}

		s.dispatcher.NotifyMissed(goal.OwnerUserID, goal.ID, goal.Title)

		slog.Info("missed check-in recorded", "goal_id", goal.ID, "date", occ.Date, "deadline", occ.At.Format(time.RFC3339))
	}

	err = s.runs.Record(goal.ID, occ.Date, nowUTC)
	if err != nil {
		slog.Debug("failed to record evaluation bookkeeping", "goal_id", goal.ID, "date", occ.Date, "error", err)
	}

	if result == repository.InsertCreated {
		return outcomeMissed
	}
	return outcomeResolved
}
