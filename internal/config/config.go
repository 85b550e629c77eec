// Package config loads and persists filterbar settings.
//
// Settings live in a single JSON file. Reads go through gjson paths with
// defaults for anything missing, and writes go through sjson so fields
// this version does not know about survive a round trip.
package config

import (
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Settings paths within the JSON document.
const (
	pathLocale = "ui.locale"
	pathAccent = "ui.theme.accent"
	pathLevel  = "log.level"
)

// Config contains the application settings.
type Config struct {
	// Locale is the BCP 47 tag for user-visible strings.
	Locale string

	// ThemeAccent is the hex accent color the theme derives from.
	ThemeAccent string

	// LogLevel is the minimum level emitted by the logger.
	LogLevel string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Locale:      "en",
		ThemeAccent: "#268bd2",
		LogLevel:    "info",
	}
}

// Load reads settings from the given path.
// A missing file is not an error: defaults are returned so first runs
// work without a settings file.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if !gjson.ValidBytes(data) {
		return cfg, ErrInvalidSettings
	}

	if v := gjson.GetBytes(data, pathLocale); v.Exists() {
		cfg.Locale = v.String()
	}
	if v := gjson.GetBytes(data, pathAccent); v.Exists() {
		cfg.ThemeAccent = v.String()
	}
	if v := gjson.GetBytes(data, pathLevel); v.Exists() {
		cfg.LogLevel = v.String()
	}

	return cfg, cfg.validate()
}

// Save writes the settings to the given path, preserving any fields in
// an existing file that this version does not manage.
func (c Config) Save(path string) error {
	if err := c.validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return ErrInvalidSettings
	}

	for _, kv := range []struct {
		path  string
		value string
	}{
		{pathLocale, c.Locale},
		{pathAccent, c.ThemeAccent},
		{pathLevel, c.LogLevel},
	} {
		data, err = sjson.SetBytes(data, kv.path, kv.value)
		if err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0o644)
}

// validate checks the settings for values no component could use.
func (c Config) validate() error {
	if c.Locale == "" {
		return ErrInvalidLocale
	}
	if !validHexColor(c.ThemeAccent) {
		return ErrInvalidAccent
	}
	return nil
}

// validHexColor reports whether s is a #rrggbb color.
func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
