package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Env keys recognized by the demo binary. Environment values override the
// settings file.
const (
	EnvCycles    = "SINGULARITY_DEMO_CYCLES"
	EnvGlobal    = "SINGULARITY_DEMO_GLOBAL"
	EnvExclusive = "SINGULARITY_DEMO_EXCLUSIVE"
)

// Settings configures a demo run.
type Settings struct {
	// Cycles is how many create/destroy cycles to run.
	Cycles int `yaml:"cycles"`
	// Global enables global retrieval for created instances.
	Global bool `yaml:"global"`
	// Exclusive selects the locking concurrency policy.
	Exclusive bool `yaml:"exclusive"`
}

// DefaultSettings returns the settings used when no file and no env are
// present.
func DefaultSettings() Settings {
	return Settings{
		Cycles:    1,
		Global:    false,
		Exclusive: true,
	}
}

// DefaultSettingsPath returns ~/.singularity/settings.yaml.
func DefaultSettingsPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".singularity", "settings.yaml"), nil
}

// LoadSettings reads settings from the given YAML file, falling back to
// defaults when path is empty and the default file does not exist, then
// applies env overrides through the config manager.
func LoadSettings(path string, manager Manager) (Settings, error) {
	settings := DefaultSettings()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultSettingsPath()
		if err != nil {
			return Settings{}, err
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No settings file is fine unless one was asked for.
	default:
		return Settings{}, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	settings.Cycles = manager.GetIntWithDefault(EnvCycles, settings.Cycles)
	settings.Global = manager.GetBoolWithDefault(EnvGlobal, settings.Global)
	settings.Exclusive = manager.GetBoolWithDefault(EnvExclusive, settings.Exclusive)

	if settings.Cycles < 1 {
		return Settings{}, fmt.Errorf("cycles must be at least 1, got %d", settings.Cycles)
	}

	return settings, nil
}
