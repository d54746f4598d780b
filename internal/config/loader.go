package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMerge loads the merge-drop tuning.
// Search order: customPath -> ~/.mergedrop/configs/mergedrop.yaml ->
// ./configs/mergedrop.yaml -> embedded default.
// Partial files are allowed; missing fields fall back to defaults.
func LoadMerge(customPath string) (MergeConfig, error) {
	var cfg MergeConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		cfg.Sanitize()
		return cfg, nil
	}

	if userPath := userConfigPath("mergedrop.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				cfg.Sanitize()
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "mergedrop.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			cfg.Sanitize()
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(defaultMergeYAML, &cfg); err != nil {
		return DefaultMergeConfig(), nil // fallback to hardcoded if embed fails
	}
	cfg.Sanitize()
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mergedrop", "configs", filename)
}
