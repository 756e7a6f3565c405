// Package config loads the explicit evaluation configuration: the rubric
// spec, the judge ensemble, the models under test, and the retry/timeout/
// pacing parameters. Nothing here is read from ambient global state; the
// caller passes the file path and the result is passed down by value.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arturpietrzak/customer-service-llm/internal/rubric"
)

// Duration is a time.Duration that unmarshals from YAML strings such as
// "60s" or "1500ms". Bare numbers are taken as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n float64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(time.Duration(n * float64(time.Second)))
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// JudgeConfig describes one LLM judge in the ensemble.
type JudgeConfig struct {
	ID          string  `yaml:"id"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Enabled     bool    `yaml:"enabled"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ModelConfig describes one model under test.
type ModelConfig struct {
	ID          string  `yaml:"id"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	DisplayName string  `yaml:"display_name"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// PoolConfig bounds the judge pool orchestrator.
type PoolConfig struct {
	MaxConcurrentPerJudge int      `yaml:"max_concurrent_per_judge"`
	RetriesPerJudge       int      `yaml:"retries_per_judge"`
	RetryDelay            Duration `yaml:"retry_delay"`
	PerCallTimeout        Duration `yaml:"per_call_timeout"`
}

// RunConfig bounds the run coordinator.
type RunConfig struct {
	ConcurrentTasks int      `yaml:"concurrent_tasks"`
	PerTestTimeout  Duration `yaml:"per_test_timeout"`
	RateLimit       Duration `yaml:"rate_limit"`
	OutputDir       string   `yaml:"output_dir"`
}

// Config is the complete evaluation configuration file.
type Config struct {
	Rubric rubric.Spec   `yaml:"rubric"`
	Judges []JudgeConfig `yaml:"judges"`
	Models []ModelConfig `yaml:"models"`
	Pool   PoolConfig    `yaml:"pool"`
	Run    RunConfig     `yaml:"run"`
}

// Load reads, defaults and validates the evaluation config. The rubric spec
// is validated separately by rubric.Load at wiring time.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Pool.MaxConcurrentPerJudge == 0 {
		cfg.Pool.MaxConcurrentPerJudge = 1
	}
	if cfg.Pool.RetriesPerJudge == 0 {
		cfg.Pool.RetriesPerJudge = 1
	}
	if cfg.Pool.RetryDelay == 0 {
		cfg.Pool.RetryDelay = Duration(time.Second)
	}
	if cfg.Pool.PerCallTimeout == 0 {
		cfg.Pool.PerCallTimeout = Duration(60 * time.Second)
	}
	if cfg.Run.ConcurrentTasks == 0 {
		cfg.Run.ConcurrentTasks = 3
	}
	if cfg.Run.PerTestTimeout == 0 {
		cfg.Run.PerTestTimeout = Duration(60 * time.Second)
	}
	if cfg.Run.RateLimit == 0 {
		cfg.Run.RateLimit = Duration(time.Second)
	}
	if cfg.Run.OutputDir == "" {
		cfg.Run.OutputDir = "results"
	}
	for i := range cfg.Judges {
		if cfg.Judges[i].MaxTokens == 0 {
			cfg.Judges[i].MaxTokens = 2000
		}
	}
	for i := range cfg.Models {
		if cfg.Models[i].MaxTokens == 0 {
			cfg.Models[i].MaxTokens = 1000
		}
		if cfg.Models[i].DisplayName == "" {
			cfg.Models[i].DisplayName = cfg.Models[i].ID
		}
	}
}

// Validate rejects configurations the run could not start with.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	enabled := 0
	for _, j := range c.Judges {
		if j.ID == "" {
			return fmt.Errorf("judge with empty id")
		}
		if seen[j.ID] {
			return fmt.Errorf("duplicate judge id %q", j.ID)
		}
		seen[j.ID] = true
		if j.Provider == "" || j.Model == "" {
			return fmt.Errorf("judge %s missing provider or model", j.ID)
		}
		if j.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("no enabled judges configured")
	}

	seen = make(map[string]bool)
	for _, m := range c.Models {
		if m.ID == "" {
			return fmt.Errorf("model with empty id")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Provider == "" || m.Model == "" {
			return fmt.Errorf("model %s missing provider or model", m.ID)
		}
	}

	if c.Pool.RetriesPerJudge < 0 {
		return fmt.Errorf("retries_per_judge must not be negative")
	}

	return nil
}

// EnabledJudges filters the judge list to the enabled entries, preserving
// declaration order. That order is the "requested judge order" the pool and
// aggregator reproduce.
func (c *Config) EnabledJudges() []JudgeConfig {
	var out []JudgeConfig
	for _, j := range c.Judges {
		if j.Enabled {
			out = append(out, j)
		}
	}
	return out
}

// Model looks up a model under test by id.
func (c *Config) Model(id string) (ModelConfig, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelConfig{}, false
}
