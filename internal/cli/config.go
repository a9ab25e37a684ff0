package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/runner"
)

// DefaultConfigFile is looked for in the working directory when --config
// is not given.
const DefaultConfigFile = ".qbridge.yaml"

// Config holds file-based defaults for qbridge commands. Flags override
// anything set here.
type Config struct {
	// Platform is the default target ("auto" selects the first
	// available).
	Platform string `yaml:"platform"`

	// Shots is the default shot count for run/test.
	Shots int `yaml:"shots"`

	// Database is the run-history SQLite path.
	Database string `yaml:"database"`

	// Runners maps platform name to the argv of its external runner.
	Runners map[string][]string `yaml:"runners"`

	// Fixture configures the test-case generator.
	Fixture FixtureConfig `yaml:"fixture"`
}

// FixtureConfig selects the completion endpoint for `qbridge generate`.
// The API key is never read from the file; it comes from the
// QBRIDGE_API_KEY or OPENAI_API_KEY environment variable.
type FixtureConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Platform: "auto",
		Shots:    1000,
		Database: "qbridge.db",
		Runners: map[string][]string{
			string(platform.Qiskit): {"run-qasm-qiskit"},
			string(platform.Cirq):   {"run-qasm-cirq"},
			string(platform.Braket): {"run-qasm-braket"},
		},
	}
}

// LoadConfig reads the config file at path, or DefaultConfigFile when
// path is empty. A missing default file is not an error; a missing
// explicit file is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Shots <= 0 {
		return nil, fmt.Errorf("config %s: shots must be positive", path)
	}
	return cfg, nil
}

// Backends builds the exec backend registry from the configured runner
// commands.
func (c *Config) Backends() (map[platform.Platform]runner.Backend, error) {
	backends := make(map[platform.Platform]runner.Backend, len(c.Runners))
	for name, command := range c.Runners {
		p, err := platform.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("config runners: %w", err)
		}
		b, err := runner.NewExecBackend(p, command)
		if err != nil {
			return nil, err
		}
		backends[p] = b
	}
	return backends, nil
}

// APIKey returns the fixture-generator credential from the environment.
func APIKey() string {
	if key := os.Getenv("QBRIDGE_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}
