package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, dir)
	}
	if cfg.BackupDir != filepath.Join(dir, "backups") {
		t.Errorf("BackupDir = %q", cfg.BackupDir)
	}
	if cfg.UIScaleFactor != 1.0 {
		t.Errorf("UIScaleFactor = %v, want 1.0", cfg.UIScaleFactor)
	}
	if cfg.SavesDir != "" {
		t.Errorf("SavesDir = %q, want empty", cfg.SavesDir)
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	cfg.SavesDir = "/games/bl3/saves"
	cfg.UIScaleFactor = 1.25

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_ConfigDirFollowsLocation(t *testing.T) {
	dir := t.TempDir()
	data := []byte("config_dir: /somewhere/else\nui_scale_factor: 0.75\n")
	if err := os.WriteFile(filepath.Join(dir, FileName), data, FilePermissions); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, dir)
	}
	if cfg.UIScaleFactor != 0.75 {
		t.Errorf("UIScaleFactor = %v", cfg.UIScaleFactor)
	}
}

func TestLoad_InvalidScale(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("ui_scale_factor: 3\n"), FilePermissions); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "ui_scale_factor" {
		t.Errorf("Load() error = %v, want ui_scale_factor ValidationError", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("saves_dir: [unclosed"), FilePermissions); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
}

func TestUIScaleBounds(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		up      bool
		want    float64
		changed bool
	}{
		{"increase", 1.0, true, 1.05, true},
		{"decrease", 1.0, false, 0.95, true},
		{"upper bound", MaxUIScale, true, MaxUIScale, false},
		{"lower bound", MinUIScale, false, MinUIScale, false},
		{"near upper bound", 1.98, true, MaxUIScale, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{UIScaleFactor: tt.start}
			var changed bool
			if tt.up {
				changed = cfg.IncreaseUIScale()
			} else {
				changed = cfg.DecreaseUIScale()
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if cfg.UIScaleFactor != tt.want {
				t.Errorf("UIScaleFactor = %v, want %v", cfg.UIScaleFactor, tt.want)
			}
		})
	}
}

func TestUIScaleDoesNotDrift(t *testing.T) {
	cfg := &Config{UIScaleFactor: MinUIScale}
	for cfg.IncreaseUIScale() {
	}
	if cfg.UIScaleFactor != MaxUIScale {
		t.Errorf("stepping up from the minimum ended at %v", cfg.UIScaleFactor)
	}
	steps := 0
	for cfg.DecreaseUIScale() {
		steps++
	}
	if steps != 30 {
		t.Errorf("took %d steps from max to min, want 30", steps)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/saves")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "saves") {
		t.Errorf("ExpandPath(~/saves) = %q", got)
	}

	if _, err := ExpandPath("   "); err == nil {
		t.Error("ExpandPath accepted an empty path")
	}
}
