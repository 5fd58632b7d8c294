package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/materna-backend/internal/platform/logger"
	"github.com/yungbote/materna-backend/internal/simulation"
)

type SimulationHandler struct {
	log   *logger.Logger
	store *simulation.Store
}

func NewSimulationHandler(log *logger.Logger, store *simulation.Store) *SimulationHandler {
	return &SimulationHandler{
		log:   log.With("handler", "SimulationHandler"),
		store: store,
	}
}

type SimulationSummary struct {
	RunID            string    `json:"run_id"`
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
	CohortSize       int       `json:"cohort_size"`
	Seed             int64     `json:"seed"`
	LearningRate     float64   `json:"learning_rate"`
	Iterations       int       `json:"iterations"`
	ReadmissionRate  float64   `json:"readmission_rate"`
	TrainingAccuracy float64   `json:"training_accuracy"`
	BaselineAccuracy float64   `json:"baseline_accuracy"`
}

func summarize(run *simulation.Run) SimulationSummary {
	return SimulationSummary{
		RunID:            run.ID.String(),
		StartedAt:        run.StartedAt,
		CompletedAt:      run.CompletedAt,
		CohortSize:       len(run.Records),
		Seed:             run.Input.Seed,
		LearningRate:     run.Input.LearningRate,
		Iterations:       run.Input.Iterations,
		ReadmissionRate:  run.ReadmissionRate,
		TrainingAccuracy: run.TrainingAccuracy,
		BaselineAccuracy: run.BaselineAccuracy,
	}
}

// GET /api/simulation
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	RespondOK(c, summarize(h.store.Current()))
}

type RunRequest struct {
	Count        *int     `json:"count"`
	Seed         *int64   `json:"seed"`
	LearningRate *float64 `json:"learning_rate"`
	Iterations   *int     `json:"iterations"`
}

// POST /api/simulation/run
// Re-runs generate/train from scratch, reusing the current run's input for
// any field the request leaves unset, and swaps the live run.
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	in := h.store.Current().Input
	if req.Count != nil {
		in.Count = *req.Count
	}
	if req.Seed != nil {
		in.Seed = *req.Seed
	}
	if req.LearningRate != nil {
		in.LearningRate = *req.LearningRate
	}
	if req.Iterations != nil {
		in.Iterations = *req.Iterations
	}
	if in.Count <= 0 {
		RespondFieldError(c, http.StatusBadRequest, "invalid_request", "count", "count must be positive")
		return
	}
	if in.LearningRate <= 0 || in.LearningRate > 1 {
		RespondFieldError(c, http.StatusBadRequest, "invalid_request", "learning_rate", "learning_rate out of range (0,1]")
		return
	}
	if in.Iterations < 0 {
		RespondFieldError(c, http.StatusBadRequest, "invalid_request", "iterations", "iterations must be non-negative")
		return
	}

	run, err := simulation.Execute(simulation.Deps{Log: h.log}, in)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "simulation_failed", err)
		return
	}
	h.store.Swap(run)
	RespondOK(c, summarize(run))
}
