package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, then the config file, then
// flags, and resolves the scene path before validating.
func Load() (*Config, error) {
	cfg := Default()

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

	if cfg.Sim.Scene != "" {
		cfg.Sim.Scene = findSceneFile(cfg.Sim.Scene, configPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// searchDirs lists where relative files are looked up: the working
// directory, next to the config file, then the user config directory.
func searchDirs(configPath string) []string {
	dirs := []string{"."}
	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
	}
	return append(dirs, ConfigDir())
}

// findConfigFile looks for config.yaml in the standard locations.
func findConfigFile() string {
	return findIn(searchDirs(""), "config.yaml")
}

// findSceneFile resolves a relative scene path against the search
// directories. Scenes may also live in a scenes/ subdirectory of the user
// config directory. Unresolved paths are returned unchanged so the loader
// reports the original name.
func findSceneFile(scene, configPath string) string {
	if filepath.IsAbs(scene) {
		return scene
	}
	dirs := append(searchDirs(configPath), filepath.Join(ConfigDir(), "scenes"))
	if path := findIn(dirs, scene); path != "" {
		return path
	}
	return scene
}

func findIn(dirs []string, name string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
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
		return filepath.Join(home, "Library", "Application Support", "PhysAnim")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PhysAnim")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "physanim")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "physanim")
	}
}

// loadFromFile merges a YAML file over cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
