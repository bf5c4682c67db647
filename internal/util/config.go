package util

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings. The YAML file is the primary surface;
// flags and environment variables override individual fields so the app
// still starts with no file at all.
type Config struct {
	// DSN is the PostgreSQL connection string.
	DSN string `yaml:"dsn"`

	// Haptics toggles the speaker-rendered vibration pulses.
	Haptics bool `yaml:"haptics"`

	// ArtifactDir is where dropped story files land. Empty means the
	// working directory.
	ArtifactDir string `yaml:"artifact_dir,omitempty"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the config used when no file is present.
func Default() Config {
	return Config{
		Haptics: true,
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("JUSTACALC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("JUSTACALC_ARTIFACT_DIR"); v != "" {
		c.ArtifactDir = v
	}
}
