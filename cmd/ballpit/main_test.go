package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func configCommand(t *testing.T) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd)
	return cmd
}

func TestLoadConfigPrecedence(t *testing.T) {
	cmd := configCommand(t)
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("seed: 5\nwidth: 640\ngravity_scale: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("preset", "calm"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("seed", "9"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 9 {
		t.Errorf("expected flag seed 9, got %d", cfg.Seed)
	}
	if cfg.Width != 640 {
		t.Errorf("expected file width 640, got %.0f", cfg.Width)
	}
	if cfg.GravityScale != 3 {
		t.Errorf("expected file gravity scale 3, got %.2f", cfg.GravityScale)
	}
	if cfg.TimeScale != 0.75 {
		t.Errorf("expected preset time scale 0.75, got %.2f", cfg.TimeScale)
	}
}

func TestLoadConfigUnchangedFlagsKeepDefaults(t *testing.T) {
	cmd := configCommand(t)
	if err := cmd.Flags().Set("preset", "zero_g"); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GravityScale != 0 {
		t.Errorf("expected preset gravity 0, got %.2f", cfg.GravityScale)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	cmd := configCommand(t)
	if err := cmd.Flags().Set("preset", "nope"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	logLevel, logFile = "loud", ""
	defer func() { logLevel = "info" }()
	if _, _, err := newLogger(false); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	logLevel = "debug"
	logFile = filepath.Join(t.TempDir(), "ballpit.log")
	defer func() { logLevel, logFile = "info", "" }()

	logger, closeLog, err := newLogger(true)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hello")
	closeLog()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"gravity_scale=0.5, 1,2", "damping=0.99"})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "gravity_scale" || names[1] != "damping" {
		t.Fatalf("unexpected names %v", names)
	}
	if len(ranges[0]) != 3 || ranges[0][1] != 1 || ranges[1][0] != 0.99 {
		t.Errorf("unexpected ranges %v", ranges)
	}

	for _, bad := range []string{"gravity_scale", "=1,2", "damping=x"} {
		if _, _, err := parseGrid([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
