// File path: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RetrievalConfig carries the tunable ranking tables. The expansion and
// blocked-term lists are declared configuration rather than hard contracts;
// a YAML file can replace their membership without a code change.
type RetrievalConfig struct {
	PreciseWeight  float64           `yaml:"precise_weight"`
	SemanticWeight float64           `yaml:"semantic_weight"`
	ScoreFloor     float64           `yaml:"score_floor"`
	Expansions     map[string]string `yaml:"expansions"`
}

// Config is the full startup configuration.
type Config struct {
	ServerAddr string `yaml:"server_addr"`
	DataDir    string `yaml:"data_dir"`

	// TelemetryPath locates the SQLite query-telemetry database. Empty
	// disables telemetry.
	TelemetryPath string `yaml:"telemetry_path"`

	// CollaboratorTimeout bounds a single generative-model call.
	CollaboratorTimeout time.Duration `yaml:"-"`

	Retrieval    RetrievalConfig `yaml:"retrieval"`
	BlockedTerms []string        `yaml:"blocked_terms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerAddr:          ":8000",
		DataDir:             "dataset",
		TelemetryPath:       "",
		CollaboratorTimeout: 20 * time.Second,
		Retrieval: RetrievalConfig{
			PreciseWeight:  0.6,
			SemanticWeight: 0.4,
			ScoreFloor:     0.01,
			Expansions: map[string]string{
				"mind":       "mind mental consciousness thought",
				"meditation": "meditation dhyana mindfulness concentration",
				"dharma":     "dharma duty righteousness moral",
				"karma":      "karma action work deed",
				"moksha":     "moksha liberation freedom enlightenment",
				"yoga":       "yoga union practice discipline",
			},
		},
		BlockedTerms: []string{
			"abuse", "hate", "violence", "illegal", "harmful",
			"offensive", "inappropriate", "vulgar",
		},
	}
}

// retrievalOverlay mirrors RetrievalConfig with pointer fields so an
// explicit zero in the file (a valid weight, disabling one index) is
// distinguishable from an absent key.
type retrievalOverlay struct {
	PreciseWeight  *float64          `yaml:"precise_weight"`
	SemanticWeight *float64          `yaml:"semantic_weight"`
	ScoreFloor     *float64          `yaml:"score_floor"`
	Expansions     map[string]string `yaml:"expansions"`
}

type fileOverlay struct {
	ServerAddr                  string           `yaml:"server_addr"`
	DataDir                     string           `yaml:"data_dir"`
	TelemetryPath               string           `yaml:"telemetry_path"`
	CollaboratorTimeoutDuration string           `yaml:"collaborator_timeout"`
	Retrieval                   retrievalOverlay `yaml:"retrieval"`
	BlockedTerms                []string         `yaml:"blocked_terms"`
}

// Load reads a YAML config file and overlays it onto the defaults. Absent
// fields in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var overlay fileOverlay
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&overlay); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	if overlay.ServerAddr != "" {
		cfg.ServerAddr = overlay.ServerAddr
	}
	if overlay.DataDir != "" {
		cfg.DataDir = overlay.DataDir
	}
	if overlay.TelemetryPath != "" {
		cfg.TelemetryPath = overlay.TelemetryPath
	}
	if overlay.CollaboratorTimeoutDuration != "" {
		dur, err := time.ParseDuration(overlay.CollaboratorTimeoutDuration)
		if err != nil {
			return cfg, fmt.Errorf("parse collaborator_timeout: %w", err)
		}
		cfg.CollaboratorTimeout = dur
	}
	if overlay.Retrieval.PreciseWeight != nil {
		cfg.Retrieval.PreciseWeight = *overlay.Retrieval.PreciseWeight
	}
	if overlay.Retrieval.SemanticWeight != nil {
		cfg.Retrieval.SemanticWeight = *overlay.Retrieval.SemanticWeight
	}
	if overlay.Retrieval.ScoreFloor != nil {
		cfg.Retrieval.ScoreFloor = *overlay.Retrieval.ScoreFloor
	}
	if len(overlay.Retrieval.Expansions) > 0 {
		cfg.Retrieval.Expansions = overlay.Retrieval.Expansions
	}
	if len(overlay.BlockedTerms) > 0 {
		cfg.BlockedTerms = overlay.BlockedTerms
	}
	return cfg, nil
}
