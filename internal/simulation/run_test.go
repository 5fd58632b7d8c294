package simulation

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/materna-backend/internal/fairness"
	"github.com/yungbote/materna-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testInput(count int) Input {
	return Input{
		Count:        count,
		Seed:         7,
		LearningRate: 0.2,
		Iterations:   200,
		Policy:       fairness.DefaultPolicy(),
	}
}

func TestExecutePopulatesRun(t *testing.T) {
	run, err := Execute(Deps{Log: testLogger(t)}, testInput(300))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if run.ID == uuid.Nil {
		t.Fatalf("run id not assigned")
	}
	if len(run.Records) != 300 {
		t.Fatalf("expected 300 records, got %d", len(run.Records))
	}
	if run.Model == nil || !run.Model.Trained() {
		t.Fatalf("model not trained")
	}
	if run.ReadmissionRate < 0 || run.ReadmissionRate > 100 {
		t.Fatalf("readmission rate %v out of range", run.ReadmissionRate)
	}
	if run.TrainingAccuracy < 0 || run.TrainingAccuracy > 100 {
		t.Fatalf("training accuracy %v out of range", run.TrainingAccuracy)
	}
	if run.BaselineAccuracy < 50 || run.BaselineAccuracy > 100 {
		t.Fatalf("majority baseline %v out of range", run.BaselineAccuracy)
	}
	if run.CompletedAt.Before(run.StartedAt) {
		t.Fatalf("completed_at before started_at")
	}
}

func TestExecuteRejectsNonPositiveCount(t *testing.T) {
	if _, err := Execute(Deps{Log: testLogger(t)}, testInput(0)); err == nil {
		t.Fatalf("expected error for zero cohort size")
	}
}

func TestRunAuditCoversWholeCohort(t *testing.T) {
	run, err := Execute(Deps{Log: testLogger(t)}, testInput(250))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	report, err := run.Audit()
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(report.Axes) != 2 {
		t.Fatalf("expected 2 axes, got %d", len(report.Axes))
	}
	for _, axis := range report.Axes {
		total := axis.Groups[0].Matched + axis.Groups[1].Matched
		if total != len(run.Records) {
			t.Fatalf("axis %s: groups cover %d of %d records", axis.Name, total, len(run.Records))
		}
	}
}

func TestStoreSwap(t *testing.T) {
	log := testLogger(t)
	first, err := Execute(Deps{Log: log}, testInput(100))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	store := NewStore(first)
	if store.Current() != first {
		t.Fatalf("store did not return initial run")
	}

	in := testInput(150)
	in.Seed = 11
	second, err := Execute(Deps{Log: log}, in)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	store.Swap(second)
	if store.Current() != second {
		t.Fatalf("store did not swap to new run")
	}
	if first.ID == second.ID {
		t.Fatalf("distinct runs must have distinct ids")
	}
}
