package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/podstreak/podstreak/internal/config"
	"github.com/podstreak/podstreak/internal/db"
	"github.com/podstreak/podstreak/internal/repository"
	"github.com/podstreak/podstreak/internal/service"
)

type App struct {
	Cfg        *config.Config
	DB         *sqlx.DB
	Dispatcher *service.DispatcherService
	Evaluator  *service.EvaluatorService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	checkInRepository := repository.NewCheckInRepository(database)
	evaluationRunRepository := repository.NewEvaluationRunRepository(database)

	// Services
	dispatcher := service.NewDispatcherService(
		userRepository,
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	evaluator := service.NewEvaluatorService(
		goalRepository,
		checkInRepository,
		evaluationRunRepository,
		dispatcher,
		cfg.EvalLookback,
		cfg.EvalConcurrency,
	)

	return &App{
		Cfg:        cfg,
		DB:         database,
		Dispatcher: dispatcher,
		Evaluator:  evaluator,
	}, nil
}

func (a *App) Close() error {
	if a.Dispatcher != nil {
		a.Dispatcher.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
