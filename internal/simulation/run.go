package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/materna-backend/internal/cohort"
	"github.com/yungbote/materna-backend/internal/fairness"
	"github.com/yungbote/materna-backend/internal/features"
	"github.com/yungbote/materna-backend/internal/model"
	"github.com/yungbote/materna-backend/internal/platform/logger"
)

type Deps struct {
	Log *logger.Logger
}

type Input struct {
	Count          int
	Seed           int64
	LearningRate   float64
	Iterations     int
	GradientShards int
	Policy         fairness.Policy
}

// Run holds one complete simulation: the generated cohort, the classifier
// trained on it, and training-time summary metrics. Audit reports are not
// stored here; they are recomputed from the live model and cohort on demand.
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt time.Time

	Input   Input
	Records []cohort.PatientRecord
	Model   *model.LogisticRegression

	ReadmissionRate  float64
	TrainingAccuracy float64
	BaselineAccuracy float64
}

// Execute runs the full pipeline once: generate the cohort, encode it, fit
// the classifier, and log an initial audit. Evaluation deliberately reuses
// the training data; there is no train/test split in this simulation.
func Execute(deps Deps, in Input) (*Run, error) {
	if in.Count <= 0 {
		return nil, fmt.Errorf("simulation: cohort size must be positive, got %d", in.Count)
	}
	log := deps.Log.With("component", "simulation")

	run := &Run{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		Input:     in,
	}

	gen := cohort.NewSeededGenerator(in.Seed)
	records, err := gen.Generate(in.Count)
	if err != nil {
		return nil, fmt.Errorf("simulation: generate cohort: %w", err)
	}
	run.Records = records

	matrix, labels := features.EncodeAll(records)

	m := model.NewLogisticRegression(model.Options{
		LearningRate:   in.LearningRate,
		Iterations:     in.Iterations,
		GradientShards: in.GradientShards,
	})
	if err := m.Fit(matrix, labels); err != nil {
		return nil, fmt.Errorf("simulation: fit: %w", err)
	}
	run.Model = m

	var readmitted, correct int
	for i, r := range records {
		if r.Readmitted {
			readmitted++
		}
		label, err := m.PredictLabel(matrix[i])
		if err != nil {
			return nil, fmt.Errorf("simulation: score record %d: %w", r.ID, err)
		}
		truth := 0
		if r.Readmitted {
			truth = 1
		}
		if label == truth {
			correct++
		}
	}
	n := float64(len(records))
	run.ReadmissionRate = 100 * float64(readmitted) / n
	majority := len(records) - readmitted
	if readmitted > majority {
		majority = readmitted
	}
	run.BaselineAccuracy = 100 * float64(majority) / n
	run.TrainingAccuracy = 100 * float64(correct) / n
	run.CompletedAt = time.Now().UTC()

	log.Info("simulation complete",
		"run_id", run.ID.String(),
		"cohort_size", len(records),
		"seed", in.Seed,
		"readmission_rate", run.ReadmissionRate,
		"training_accuracy", run.TrainingAccuracy,
		"baseline_accuracy", run.BaselineAccuracy,
		"duration_ms", run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
	)

	report, err := run.Audit()
	if err != nil {
		return nil, err
	}
	for _, axis := range report.Axes {
		log.Info("fairness axis",
			"run_id", run.ID.String(),
			"axis", axis.Name,
			"gap_points", axis.GapPoints,
			"gap_known", axis.GapKnown,
			"biased", axis.Biased,
		)
	}
	if report.Biased {
		log.Warn("bias flag raised", "run_id", run.ID.String(), "threshold_points", report.ThresholdPoints)
	}

	return run, nil
}

// Audit recomputes the fairness report against the run's model and cohort.
func (r *Run) Audit() (fairness.Report, error) {
	return fairness.Audit(r.Model, r.Records, r.Input.Policy)
}
