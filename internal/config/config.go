// Package config assembles the editor configuration from the embedded
// defaults and the environment.
package config

import (
	"os"
	"strconv"

	"github.com/samber/oops"

	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/world"
)

// Environment variables read by Load.
const (
	EnvCorridorMinLength = "DUNGEON_CORRIDOR_MIN_LENGTH"
	EnvCorridorMaxLength = "DUNGEON_CORRIDOR_MAX_LENGTH"
	EnvSavePath          = "DUNGEON_SAVE_PATH"
	EnvLocaleDir         = "DUNGEON_LOCALE_DIR"
	EnvLang              = "DUNGEON_LANG"
	EnvTelemetry         = "DUNGEON_TELEMETRY"
	EnvLogFile           = "DUNGEON_LOG_FILE"
)

// Config holds editor configuration options.
type Config struct {
	// Limits bounds every level edit.
	Limits world.Limits
	// SavePath is where levels are saved and loaded by default.
	SavePath string
	// LocaleDir holds gettext catalogs; empty means built-in English strings.
	LocaleDir string
	// Lang selects the catalog under LocaleDir.
	Lang string
	// Telemetry enables OTLP trace export.
	Telemetry bool
	// LogFile receives debug logs; empty discards them.
	LogFile string
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	errb := oops.In("config")

	limits, err := gamedata.LoadLimits()
	if err != nil {
		return Config{}, errb.Wrapf(err, "loading default limits")
	}
	cfg := Config{
		Limits:    limits,
		SavePath:  "level.json",
		Lang:      "en_US",
		Telemetry: false,
	}

	if err := intVar(getenv, EnvCorridorMinLength, &cfg.Limits.CorridorMinLength); err != nil {
		return Config{}, err
	}
	if err := intVar(getenv, EnvCorridorMaxLength, &cfg.Limits.CorridorMaxLength); err != nil {
		return Config{}, err
	}
	if err := cfg.Limits.Validate(); err != nil {
		return Config{}, errb.Wrapf(err, "invalid corridor limits")
	}

	if v := getenv(EnvSavePath); v != "" {
		cfg.SavePath = v
	}
	if v := getenv(EnvLocaleDir); v != "" {
		cfg.LocaleDir = v
	}
	if v := getenv(EnvLang); v != "" {
		cfg.Lang = v
	}
	cfg.LogFile = getenv(EnvLogFile)
	if v := getenv(EnvTelemetry); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errb.With("var", EnvTelemetry).Wrapf(err, "%s must be a boolean", EnvTelemetry)
		}
		cfg.Telemetry = enabled
	}
	return cfg, nil
}

func intVar(getenv func(string) string, name string, dst *int) error {
	v := getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return oops.In("config").With("var", name).Wrapf(err, "%s must be an integer", name)
	}
	*dst = n
	return nil
}
