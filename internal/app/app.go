package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/materna-backend/internal/config"
	"github.com/yungbote/materna-backend/internal/fairness"
	"github.com/yungbote/materna-backend/internal/httpapi"
	"github.com/yungbote/materna-backend/internal/httpapi/handlers"
	"github.com/yungbote/materna-backend/internal/platform/logger"
	"github.com/yungbote/materna-backend/internal/simulation"
)

type App struct {
	Log    *logger.Logger
	Config *config.Config
	Store  *simulation.Store

	server *http.Server
}

// New loads config, runs the startup simulation (generate -> fit -> audit),
// and wires the HTTP surface around the resulting run.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	policy := fairness.DefaultPolicy()
	if cfg.Fairness.PolicyPath != "" {
		policy, err = fairness.LoadPolicy(cfg.Fairness.PolicyPath)
		if err != nil {
			return nil, err
		}
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	run, err := simulation.Execute(simulation.Deps{Log: log}, simulation.Input{
		Count:          cfg.Simulation.CohortSize,
		Seed:           seed,
		LearningRate:   cfg.Simulation.LearningRate,
		Iterations:     cfg.Simulation.Iterations,
		GradientShards: cfg.Simulation.GradientShards,
		Policy:         policy,
	})
	if err != nil {
		return nil, err
	}
	store := simulation.NewStore(run)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Log:               log,
		HealthHandler:     handlers.NewHealthHandler(),
		SimulationHandler: handlers.NewSimulationHandler(log, store),
		CohortHandler:     handlers.NewCohortHandler(log, store),
		PredictHandler:    handlers.NewPredictHandler(log, store),
		AuditHandler:      handlers.NewAuditHandler(log, store),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	}

	return &App{
		Log:    log,
		Config: cfg,
		Store:  store,
		server: srv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("http server listening", "addr", a.Config.HTTP.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		_ = a.server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
