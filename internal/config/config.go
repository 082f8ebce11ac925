// Package config holds the persisted editor settings.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// FileName is the config file stored under the config directory
	FileName = "config.yaml"

	MinUIScale  = 0.50
	MaxUIScale  = 2.00
	UIScaleStep = 0.05
)

// Config is everything the editor remembers between runs
type Config struct {
	SavesDir      string  `yaml:"saves_dir"`
	BackupDir     string  `yaml:"backup_dir"`
	ConfigDir     string  `yaml:"config_dir"`
	UIScaleFactor float64 `yaml:"ui_scale_factor"`
}

// ValidationError reports a config field with an unusable value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the configuration used when nothing is stored in dir
func Default(dir string) *Config {
	return &Config{
		BackupDir:     filepath.Join(dir, "backups"),
		ConfigDir:     dir,
		UIScaleFactor: 1.0,
	}
}

// DefaultDir returns the per-user config directory, e.g. ~/.config/bl3edit
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, "bl3edit"), nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ConfigDir == "" {
		return &ValidationError{Field: "config_dir", Message: "must not be empty"}
	}
	if c.BackupDir == "" {
		return &ValidationError{Field: "backup_dir", Message: "must not be empty"}
	}
	if c.UIScaleFactor < MinUIScale || c.UIScaleFactor > MaxUIScale {
		return &ValidationError{
			Field:   "ui_scale_factor",
			Message: fmt.Sprintf("must be between %.2f and %.2f", MinUIScale, MaxUIScale),
		}
	}
	return nil
}

// Path is the config file location
func (c *Config) Path() string {
	return filepath.Join(c.ConfigDir, FileName)
}

// DatabasePath is the SQLite database holding the commit history
func (c *Config) DatabasePath() string {
	return filepath.Join(c.ConfigDir, "history.db")
}

// LogPath is where the editor writes its log
func (c *Config) LogPath() string {
	return filepath.Join(c.ConfigDir, "bl3edit.log")
}

// KeybindsPath is the optional keybinding override file
func (c *Config) KeybindsPath() string {
	return filepath.Join(c.ConfigDir, "keybinds.jsonc")
}

// IncreaseUIScale steps the scale factor up. It reports whether it changed.
func (c *Config) IncreaseUIScale() bool {
	return c.setUIScale(c.UIScaleFactor + UIScaleStep)
}

// DecreaseUIScale steps the scale factor down. It reports whether it changed.
func (c *Config) DecreaseUIScale() bool {
	return c.setUIScale(c.UIScaleFactor - UIScaleStep)
}

func (c *Config) setUIScale(v float64) bool {
	v = math.Round(v*100) / 100
	v = math.Min(math.Max(v, MinUIScale), MaxUIScale)
	if v == c.UIScaleFactor {
		return false
	}
	c.UIScaleFactor = v
	return true
}

// ExpandPath resolves a leading ~/ to the home directory and cleans the result
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}
	return filepath.Abs(path)
}
