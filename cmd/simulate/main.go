package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/materna-backend/internal/fairness"
	"github.com/yungbote/materna-backend/internal/model"
	"github.com/yungbote/materna-backend/internal/platform/logger"
	"github.com/yungbote/materna-backend/internal/simulation"
)

// One-shot run: generate a cohort, train the classifier, print the audit.
func main() {
	var (
		count      int
		seed       int64
		lr         float64
		iterations int
		shards     int
		policyPath string
		logMode    string
	)
	flag.IntVar(&count, "count", 500, "cohort size")
	flag.Int64Var(&seed, "seed", 0, "generator seed (0 seeds from the clock)")
	flag.Float64Var(&lr, "lr", model.DefaultLearningRate, "learning rate")
	flag.IntVar(&iterations, "iterations", model.DefaultIterations, "gradient descent iterations")
	flag.IntVar(&shards, "shards", 1, "gradient accumulation shards")
	flag.StringVar(&policyPath, "policy", "", "fairness policy YAML (empty uses the built-in policy)")
	flag.StringVar(&logMode, "log-mode", "development", "log mode (development|production)")
	flag.Parse()

	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	policy := fairness.DefaultPolicy()
	if policyPath != "" {
		policy, err = fairness.LoadPolicy(policyPath)
		if err != nil {
			log.Fatal("load policy", "path", policyPath, "error", err)
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	run, err := simulation.Execute(simulation.Deps{Log: log}, simulation.Input{
		Count:          count,
		Seed:           seed,
		LearningRate:   lr,
		Iterations:     iterations,
		GradientShards: shards,
		Policy:         policy,
	})
	if err != nil {
		log.Fatal("simulation failed", "error", err)
	}

	report, err := run.Audit()
	if err != nil {
		log.Fatal("audit failed", "error", err)
	}

	fmt.Printf("run %s: cohort=%d seed=%d\n", run.ID, len(run.Records), seed)
	fmt.Printf("readmission rate:  %.1f%%\n", run.ReadmissionRate)
	fmt.Printf("training accuracy: %.1f%% (baseline %.1f%%)\n", run.TrainingAccuracy, run.BaselineAccuracy)
	for _, axis := range report.Axes {
		fmt.Printf("axis %s:\n", axis.Name)
		for _, g := range axis.Groups {
			if g.NoData {
				fmt.Printf("  %-10s no data (0 records)\n", g.Name)
				continue
			}
			fmt.Printf("  %-10s %.1f%% (%d records)\n", g.Name, g.Accuracy, g.Matched)
		}
		if axis.GapKnown {
			fmt.Printf("  gap: %.1f points, biased=%v\n", axis.GapPoints, axis.Biased)
		}
	}
	fmt.Printf("bias flag: %v (threshold %.0f points)\n", report.Biased, report.ThresholdPoints)

	if report.Biased {
		os.Exit(2)
	}
}
