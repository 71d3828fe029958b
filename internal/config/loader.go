package config

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the config file when no path is passed explicitly.
	PathEnv     = "CHOIRSCHED_CONFIG"
	DefaultPath = "./choirsched.yaml"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An explicit path (argument, then CHOIRSCHED_CONFIG) must exist. Otherwise
// ./choirsched.yaml is used when present, and ENV + defaults when not.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv(PathEnv)
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if len(cfg.Seed) == 0 {
		cfg.Seed = DefaultSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
