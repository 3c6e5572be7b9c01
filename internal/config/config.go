package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultMinLength     = 1
	DefaultMinLengthMode = "letters"
	DefaultFortuneDelay  = 500 * time.Millisecond
)

// DefaultFortunes are served when the config lists no texts.
var DefaultFortunes = []string{
	"A journey of a thousand miles begins with a single step.",
	"Simplicity is prerequisite for reliability.",
	"Make it work, make it right, make it fast.",
	"The best way out is always through.",
}

// Config is the todo demo configuration. Fields map 1:1 to todo.yaml.
type Config struct {
	// MinLength is how long a todo text must be to count as valid.
	MinLength int `yaml:"min_length"`

	// MinLengthMode is what MinLength counts: letters | words.
	MinLengthMode string `yaml:"min_length_mode"`

	Fortune FortuneConfig `yaml:"fortune"`
}

type FortuneConfig struct {
	// Delay simulates the latency of the fortune service.
	Delay time.Duration `yaml:"delay"`

	// Texts are served round-robin.
	Texts []string `yaml:"texts"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config data, applying defaults and validation.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if len(cfg.Fortune.Texts) == 0 {
		cfg.Fortune.Texts = DefaultFortunes
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		MinLength:     DefaultMinLength,
		MinLengthMode: DefaultMinLengthMode,
		Fortune: FortuneConfig{
			Delay: DefaultFortuneDelay,
			Texts: DefaultFortunes,
		},
	}
}

func validate(cfg *Config) error {
	if cfg.MinLength < 1 {
		return fmt.Errorf("min_length must be at least 1, got %d", cfg.MinLength)
	}
	switch cfg.MinLengthMode {
	case "letters", "words":
	default:
		return fmt.Errorf("unknown min_length_mode %q", cfg.MinLengthMode)
	}
	if cfg.Fortune.Delay < 0 {
		return fmt.Errorf("fortune.delay must not be negative")
	}
	return nil
}
