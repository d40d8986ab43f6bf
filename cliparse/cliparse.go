package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	DatabaseType string
	DatabaseURL  string
	DataDir      string
	WriteMode    string
	Port         int
	SessionSalt  string
	LoadSchedule string
	LogLevel     string
	LogFormat    string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		DatabaseType: "sqlite",
		DatabaseURL:  "incidents.db",
		DataDir:      "DATA",
		WriteMode:    "replace",
		Port:         3318,
		LogLevel:     "info",
		LogFormat:    "auto",
	}
}

// flag name -> environment variable
var envVars = map[string]string{
	"db-type":       "DATABASE_TYPE",
	"database-url":  "DATABASE_URL",
	"data-dir":      "DATA_DIR",
	"mode":          "WRITE_MODE",
	"port":          "PORT",
	"session-salt":  "SESSION_SALT",
	"load-schedule": "LOAD_SCHEDULE",
	"log-level":     "LOG_LEVEL",
	"log-format":    "LOG_FORMAT",
}

var (
	databaseTypes = []string{"sqlite", "postgres"}
	writeModes    = []string{"replace", "append"}
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"auto", "text", "json"}
)

// BindFlags registers every config flag on fs, with defaults from cfg
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.DatabaseType, "db-type", "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", cfg.DatabaseURL, "Database URL or SQLite file path")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the CSV files")
	fs.StringVarP(&cfg.WriteMode, "mode", "m", cfg.WriteMode, "Write mode for CSV loads (replace or append)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Server port")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", cfg.SessionSalt, "Session token salt (prefer env)")

	fs.StringVar(&cfg.LoadSchedule, "load-schedule", cfg.LoadSchedule, "Cron expression for scheduled CSV reloads while serving")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (auto, text, json)")
}

// Resolve fills flags that were not given on the command line from the
// environment, loading a .env file first if present, then validates.
// CLI flags take precedence over environment variables.
func Resolve(flags *pflag.FlagSet, cfg *Config) error {
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		env, ok := envVars[f.Name]
		if !ok || f.Changed {
			return
		}
		if v := os.Getenv(env); v != "" {
			if err := flags.Set(f.Name, v); err != nil {
				errs = append(errs, fmt.Errorf("invalid %s env variable: %w", env, err))
			}
		}
	})
	if err := errors.Join(errs...); err != nil {
		return err
	}

	return cfg.Validate()
}

// ParseFlags parses args into a Config, applying env fallbacks
func ParseFlags(args []string) (Config, error) {
	cfg := Default()

	fs := pflag.NewFlagSet("incidentdb", pflag.ContinueOnError)
	BindFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := Resolve(fs, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks enumerated settings
func (c Config) Validate() error {
	if !slices.Contains(databaseTypes, c.DatabaseType) {
		return fmt.Errorf("invalid database type %q (want sqlite or postgres)", c.DatabaseType)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if !slices.Contains(writeModes, c.WriteMode) {
		return fmt.Errorf("invalid write mode %q (want replace or append)", c.WriteMode)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	return nil
}

// RequireSessionSalt is checked by commands that issue session tokens
func (c Config) RequireSessionSalt() error {
	if c.SessionSalt == "" {
		return errors.New("SESSION_SALT required")
	}
	return nil
}
