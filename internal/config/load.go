package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/materna-backend/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		if strings.TrimSpace(u) == "" {
			d.Duration = 0
			return nil
		}
		dd, err := time.ParseDuration(u)
		if err != nil {
			return err
		}
		d.Duration = dd
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		Simulation: SimulationConfig{
			CohortSize:     500,
			LearningRate:   0.2,
			Iterations:     1500,
			GradientShards: 1,
		},
	}
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("MATERNA_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.json")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		var loaded Config
		if err := json.Unmarshal(b, &loaded); err != nil {
			return nil, err
		}
		*cfg = loaded
	}

	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.HTTP.Addr = envutil.String("MATERNA_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.Simulation.CohortSize = envutil.Int("MATERNA_COHORT_SIZE", cfg.Simulation.CohortSize)
	cfg.Simulation.Seed = envutil.Int64("MATERNA_SEED", cfg.Simulation.Seed)
	cfg.Simulation.LearningRate = envutil.Float("MATERNA_LEARNING_RATE", cfg.Simulation.LearningRate)
	cfg.Simulation.Iterations = envutil.Int("MATERNA_ITERATIONS", cfg.Simulation.Iterations)
	cfg.Simulation.GradientShards = envutil.Int("MATERNA_GRADIENT_SHARDS", cfg.Simulation.GradientShards)
	cfg.Fairness.PolicyPath = envutil.String("MATERNA_FAIRNESS_POLICY_PATH", cfg.Fairness.PolicyPath)

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.Simulation.CohortSize <= 0 {
		return nil, fmt.Errorf("config: simulation.cohort_size must be positive")
	}
	if cfg.Simulation.LearningRate <= 0 || cfg.Simulation.LearningRate > 1 {
		return nil, fmt.Errorf("config: simulation.learning_rate %v out of range (0,1]", cfg.Simulation.LearningRate)
	}
	if cfg.Simulation.Iterations < 0 {
		return nil, fmt.Errorf("config: simulation.iterations must be non-negative")
	}
	if cfg.Simulation.GradientShards < 0 {
		return nil, fmt.Errorf("config: simulation.gradient_shards must be non-negative")
	}

	return cfg, nil
}
