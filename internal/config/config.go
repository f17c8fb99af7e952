package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models talentflow.yml.
type Config struct {
	Seed struct {
		Jobs             int `yaml:"jobs"`
		CandidatesPerJob int `yaml:"candidatesPerJob"`
	} `yaml:"seed"`
	Simulator struct {
		LatencyMinMs     int      `yaml:"latencyMinMs"`
		LatencyMaxMs     int      `yaml:"latencyMaxMs"`
		ErrorRate        float64  `yaml:"errorRate"`
		ReorderErrorRate float64  `yaml:"reorderErrorRate"`
		WriteMethods     []string `yaml:"writeMethods"`
	} `yaml:"simulator"`
	Auth struct {
		JWTSecret string `yaml:"jwtSecret"`
	} `yaml:"auth"`
}

// Load reads and validates config from workspace.
func Load(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found; create one with talentflow config init", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional returns the default config if the file does not exist.
func LoadOptional(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Seed.Jobs <= 0 {
		return fmt.Errorf("config.seed.jobs must be positive")
	}
	if c.Seed.CandidatesPerJob < 0 {
		return fmt.Errorf("config.seed.candidatesPerJob must not be negative")
	}
	if c.Simulator.LatencyMinMs < 0 || c.Simulator.LatencyMaxMs < 0 {
		return fmt.Errorf("config.simulator latency bounds must not be negative")
	}
	if c.Simulator.LatencyMaxMs < c.Simulator.LatencyMinMs {
		return fmt.Errorf("config.simulator.latencyMaxMs must be >= latencyMinMs")
	}
	if c.Simulator.ErrorRate < 0 || c.Simulator.ErrorRate >= 1 {
		return fmt.Errorf("config.simulator.errorRate must be in [0,1)")
	}
	if c.Simulator.ReorderErrorRate < 0 || c.Simulator.ReorderErrorRate >= 1 {
		return fmt.Errorf("config.simulator.reorderErrorRate must be in [0,1)")
	}
	for _, m := range c.Simulator.WriteMethods {
		switch m {
		case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		default:
			return fmt.Errorf("config.simulator.writeMethods contains unsupported method %s", m)
		}
	}
	return nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "talentflow.yml")
}

// Default returns the default Config struct.
func Default() *Config {
	var cfg Config
	_ = yaml.Unmarshal([]byte(defaultTemplate), &cfg)
	return &cfg
}

// GenerateDefault returns default config YAML.
func GenerateDefault() string {
	return defaultTemplate
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

const defaultTemplate = `seed:
  jobs: 25
  candidatesPerJob: 40

simulator:
  latencyMinMs: 200
  latencyMaxMs: 1200
  errorRate: 0.07
  reorderErrorRate: 0.10
  writeMethods: [POST, PATCH, PUT]

auth:
  jwtSecret: ""
`
