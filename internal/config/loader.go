package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME holding configs and data.
const AppDir = ".platformer"

// configNames are tried in order inside each search directory.
var configNames = []string{"platformer.yaml", "platformer.yml", "platformer.toml"}

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.{yaml,toml} ->
// ./configs/platformer.{yaml,toml} -> embedded default -> hardcoded default.
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. Only an explicit customPath reports read, parse or validation
// errors; unusable files in the search directories are skipped.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data, filepath.Ext(customPath))
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return PlatformerConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, dir := range searchDirs() {
		for _, name := range configNames {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			if cfg, err := decode(data, filepath.Ext(name)); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultPlatformerYAML, ".yaml")
	if err != nil || cfg.Validate() != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data over the defaults, choosing the format by extension.
func decode(data []byte, ext string) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return PlatformerConfig{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return PlatformerConfig{}, err
		}
	}
	return cfg, nil
}

// searchDirs returns the user and local config directories.
func searchDirs() []string {
	var dirs []string
	if dir := UserDir("configs"); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs, "configs")
}

// UserDir returns ~/.platformer/<sub>, or empty if home is unavailable.
func UserDir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, sub)
}

// DefaultDBPath returns the default scoreboard database location.
func DefaultDBPath() string {
	if dir := UserDir(""); dir != "" {
		return filepath.Join(dir, "scores.db")
	}
	return "platformer.db"
}
