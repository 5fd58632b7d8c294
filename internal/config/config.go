package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes"`
}

type SimulationConfig struct {
	// CohortSize is the number of synthetic records generated at startup.
	CohortSize int `json:"cohort_size"`

	// Seed drives the cohort generator. A zero seed means "seed from the
	// clock", matching the reference behavior of an unseeded run.
	Seed int64 `json:"seed,omitempty"`

	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`

	// GradientShards controls parallel gradient accumulation inside Fit.
	GradientShards int `json:"gradient_shards,omitempty"`
}

type FairnessConfig struct {
	// PolicyPath optionally points at a YAML policy file. Empty means the
	// built-in two-axis, 10-point policy.
	PolicyPath string `json:"policy_path,omitempty"`
}

type Config struct {
	Env        string           `json:"env"`
	HTTP       HTTPConfig       `json:"http"`
	Simulation SimulationConfig `json:"simulation"`
	Fairness   FairnessConfig   `json:"fairness"`
}
