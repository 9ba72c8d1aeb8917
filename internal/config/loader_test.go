package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "keyline.toml", `
history_capacity = 50
navigation_window = 10
prompt = "$ "
log_level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryCapacity != 50 {
		t.Errorf("HistoryCapacity = %d, want 50", cfg.HistoryCapacity)
	}
	if cfg.NavigationWindow != 10 {
		t.Errorf("NavigationWindow = %d, want 10", cfg.NavigationWindow)
	}
	if cfg.Prompt != "$ " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "keyline.yaml", `
history_capacity: 25
prompt: ">> "
history_file: /tmp/hist.jsonl
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryCapacity != 25 {
		t.Errorf("HistoryCapacity = %d, want 25", cfg.HistoryCapacity)
	}
	if cfg.Prompt != ">> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.HistoryFile != "/tmp/hist.jsonl" {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeFile(t, "bad.toml", `history_capacity = [[[`)

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "keyline.ini", `prompt=x`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "keyline.toml", `prompt = "% "`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "% " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.HistoryCapacity != 100 {
		t.Errorf("HistoryCapacity = %d, want default 100", cfg.HistoryCapacity)
	}
}
