package config

import "errors"

// Sentinel errors for settings loading.
var (
	// ErrInvalidSettings is returned when the settings file is not valid JSON.
	ErrInvalidSettings = errors.New("settings file is not valid JSON")

	// ErrInvalidLocale is returned when the locale setting is empty.
	ErrInvalidLocale = errors.New("locale must not be empty")

	// ErrInvalidAccent is returned when the accent color is not a #rrggbb value.
	ErrInvalidAccent = errors.New("theme accent must be a #rrggbb color")
)
