package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load of missing file returned %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_ReadsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"ui":{"locale":"de-AT","theme":{"accent":"#aa00ff"}},"log":{"level":"debug"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Locale != "de-AT" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.ThemeAccent != "#aa00ff" {
		t.Errorf("ThemeAccent = %q", cfg.ThemeAccent)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"ui":{"locale":"fr"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Locale != "fr" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.ThemeAccent != Default().ThemeAccent {
		t.Errorf("ThemeAccent = %q, want default", cfg.ThemeAccent)
	}
	if cfg.LogLevel != Default().LogLevel {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestLoad_InvalidAccent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"ui":{"theme":{"accent":"blue"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidAccent) {
		t.Errorf("expected ErrInvalidAccent, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	cfg := Config{Locale: "fr", ThemeAccent: "#112233", LogLevel: "warn"}
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != cfg {
		t.Errorf("round trip got %+v, want %+v", loaded, cfg)
	}
}

func TestSave_PreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	existing := `{"ui":{"locale":"en","extras":{"columns":4}},"custom":"kept"}`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Locale = "de"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := gjson.GetBytes(data, "ui.locale").String(); got != "de" {
		t.Errorf("ui.locale = %q", got)
	}
	if got := gjson.GetBytes(data, "ui.extras.columns").Int(); got != 4 {
		t.Errorf("ui.extras.columns = %d, want preserved 4", got)
	}
	if got := gjson.GetBytes(data, "custom").String(); got != "kept" {
		t.Errorf("custom = %q, want kept", got)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := Config{Locale: "", ThemeAccent: "#112233", LogLevel: "info"}
	if err := cfg.Save(filepath.Join(t.TempDir(), "settings.json")); !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("expected ErrInvalidLocale, got %v", err)
	}
}
