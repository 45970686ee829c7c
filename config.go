package nativecore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the filename cmd programs look for when no -config
// flag is given.
const DefaultConfigPath = "nativecore.yaml"

// Backend names accepted in Config.Backend.
const (
	BackendMemory = "memory"
	BackendPeriph = "periph"
)

// LogConfig selects where board diagnostics go.  They never share the Serial
// console.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	Output string `yaml:"output"` // stderr, stdout or a file path
}

// Config is the board configuration read from YAML.  Every field is optional.
type Config struct {
	Backend string    `yaml:"backend"` // memory (default) or periph
	Console string    `yaml:"console"` // stdout (default), stderr or a file path
	Baud    uint32    `yaml:"baud"`    // initial rate reported by Serial.Baud
	Log     LogConfig `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Console: "stdout",
		Baud:    9600,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// LoadConfig reads the configuration at path.  A missing file, or an empty
// path, yields DefaultConfig.  Fields left out of the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first unusable value in c.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", BackendMemory, BackendPeriph:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendMemory, BackendPeriph)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// SaveConfig writes cfg to path.  The file is written to a temporary name and
// renamed so a crash never leaves a truncated config behind.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
