package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Proc.Root != "/proc" {
		t.Errorf("Proc.Root = %q, want /proc", cfg.Proc.Root)
	}
	if cfg.Proc.TTYDrivers != "/proc/tty/drivers" {
		t.Errorf("Proc.TTYDrivers = %q, want /proc/tty/drivers", cfg.Proc.TTYDrivers)
	}
	if cfg.Tmux.Binary != "tmux" || cfg.Tmux.Socket != "" {
		t.Errorf("Tmux = %+v, want binary tmux and no socket", cfg.Tmux)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
proc:
  root: /host/proc
tmux:
  binary: /usr/local/bin/tmux
  socket: work
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Proc.Root != "/host/proc" {
		t.Errorf("Proc.Root = %q, want /host/proc", cfg.Proc.Root)
	}
	// Not in the file, so the default survives.
	if cfg.Proc.TTYDrivers != "/proc/tty/drivers" {
		t.Errorf("Proc.TTYDrivers = %q, want default", cfg.Proc.TTYDrivers)
	}
	if cfg.Tmux.Binary != "/usr/local/bin/tmux" {
		t.Errorf("Tmux.Binary = %q", cfg.Tmux.Binary)
	}
	if cfg.Tmux.Socket != "work" {
		t.Errorf("Tmux.Socket = %q, want work", cfg.Tmux.Socket)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing file returned nil error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("proc: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("Load of invalid yaml returned nil error")
	}
}
