// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// *before* this package reads env vars. No explicit call needed.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	koanf reads config sources (env here) and unmarshals them into structs.

	Key idea in this file:
	- Env vars are read using a prefix: COUNTRIES_
	- Keys are normalized (lowercased, prefix removed)
	- Nesting is expressed with a double underscore in env var names,
	  mapped onto koanf's "." delimiter:
	  COUNTRIES_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
*/

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"required"` tags are used by go-playground/validator
// to enforce that the config is present and populated.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at runtime.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as integer seconds in env and converted to
// time.Duration where the http.Server is configured.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the allowed request rate per client IP, in requests
	// per second. Zero disables the limiter.
	RateLimit float64 `koanf:"rate_limit"`
}

// New loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix COUNTRIES_
//   - Converts env keys into koanf keys ("__" becomes the "." nesting delimiter)
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Injects default observability config if missing
//   - Overrides observability service name + environment
//
// On bad config this logs fatally: a process with broken config should not
// reach the point of serving traffic.
func New() (*Config, error) {
	// Bootstrap logger for config-load failures only. The real application
	// logger is built later, from the loaded config.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// "." is the key-path delimiter koanf uses to represent nesting,
	// e.g. "server.port" means Config.Server.Port.
	k := koanf.New(".")

	// Load environment variables into koanf.
	//
	// The mapping function:
	//   - strips the COUNTRIES_ prefix
	//   - lowercases the rest
	//   - turns "__" into "." so env vars can express nesting without
	//     colliding with multi-word keys like read_timeout
	//
	// Example:
	//   COUNTRIES_SERVER__READ_TIMEOUT -> "server.read_timeout"
	err := k.Load(env.Provider("COUNTRIES_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "COUNTRIES_")), "__", ".")
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	// Unmarshal from the root ("") so the whole tree is decoded at once.
	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	// Observability is a pointer field, so nil means "missing". When env
	// only sets some of its keys, fill the gaps from defaults before any
	// validation runs, or a partially-configured block would abort startup.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	} else {
		defaults := DefaultObservabilityConfig()
		if mainConfig.Observability.Logging.Level == "" {
			mainConfig.Observability.Logging.Level = defaults.Logging.Level
		}
		if mainConfig.Observability.Logging.Format == "" {
			mainConfig.Observability.Logging.Format = defaults.Logging.Format
		}
	}

	// Force service name and environment values regardless of what was set,
	// so tracing/logging sees consistent service naming.
	mainConfig.Observability.ServiceName = "countries-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	// Validate the entire config struct recursively. Any missing required
	// field aborts startup here rather than surfacing mid-request later.
	validate := validator.New()
	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
