package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./carousel.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Carousel3D")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Carousel3D")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "carousel3d")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "carousel3d")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Model paths listed in the file are resolved against the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	before := slices.Clone(cfg.Carousel.Models)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if !slices.Equal(before, cfg.Carousel.Models) {
		cfg.Carousel.Models = resolvePaths(filepath.Dir(path), cfg.Carousel.Models)
	}
	return nil
}

func resolvePaths(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) || base == "." {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(base, p)
	}
	return out
}
