package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the user and local directories.
const FileName = "servicedrop.yaml"

// Environment variables that override loaded values.
const (
	EnvTickMS        = "SERVICEDROP_TICK_MS"
	EnvDropStep      = "SERVICEDROP_DROP_STEP"
	EnvResultDelayMS = "SERVICEDROP_RESULT_DELAY_MS"
	EnvIconSize      = "SERVICEDROP_ICON_SIZE"
	EnvScoring       = "SERVICEDROP_SCORING"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.servicedrop/configs/servicedrop.yaml -> ./configs/servicedrop.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	// Start from defaults so partial files only override what they set
	cfg := DefaultGameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultGameConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultGameConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".servicedrop", "configs", filename)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are not an error; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: cannot load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from environment variables.
// lookup is usually os.LookupEnv.
func ApplyEnv(cfg *GameConfig, lookup func(string) (string, bool)) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvTickMS, &cfg.Timing.TickMS},
		{EnvDropStep, &cfg.Timing.DropStep},
		{EnvResultDelayMS, &cfg.Timing.ResultDelayMS},
		{EnvIconSize, &cfg.Display.IconSize},
	}
	for _, v := range ints {
		raw, ok := lookup(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", v.name, err)
		}
		*v.dst = n
	}

	if raw, ok := lookup(EnvScoring); ok && raw != "" {
		cfg.Scoring.Mode = raw
	}
	return nil
}

// Marshal renders the config as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
