// Package config resolves settings from defaults, a TOML file, the
// environment and root flags, in that order of increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/sqltodo/internal/logging"
	"github.com/idilsaglam/sqltodo/internal/store/sqlitestore"
	"github.com/idilsaglam/sqltodo/internal/ui"
)

const (
	DirName        = ".todo"
	ConfigFileName = "config.toml"

	DefaultTheme     = "classic"
	DefaultColor     = "auto"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config is the resolved configuration.
type Config struct {
	DBPath    string `toml:"db_path"`
	Theme     string `toml:"theme"`
	Color     string `toml:"color"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// File is the config file that was read, empty if none.
	File string `toml:"-"`
}

// Env lets tests substitute the process environment.
type Env func(string) string

// Flags are the root flags. Register them with Bind before parsing.
type Flags struct {
	Config    string
	DBPath    string
	Theme     string
	Color     string
	LogLevel  string
	LogFormat string
}

// Bind registers the root flags on flagSet.
func (f *Flags) Bind(flagSet *flag.FlagSet) {
	flagSet.StringVar(&f.Config, "config", "", "path to a TOML config file")
	flagSet.StringVar(&f.DBPath, "db", "", "path to the SQLite database file")
	flagSet.StringVar(&f.Theme, "theme", "", "output theme: classic, neon or mono")
	flagSet.StringVar(&f.Color, "color", "", "colour output: auto, always or never")
	flagSet.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	flagSet.StringVar(&f.LogFormat, "log-format", "", "log format: text, logfmt or json")
}

// Home returns the per-user data directory (~/.todo).
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// ErrNoDatabase is returned by DatabasePath when no layer set a path and
// there is no home directory to default to.
var ErrNoDatabase = errors.New("no database path: set --db, TODO_DB or db_path")

// Defaults returns the built-in settings. Without a home directory the
// database path is left empty for a later layer to fill in.
func Defaults() *Config {
	cfg := &Config{
		Theme:     DefaultTheme,
		Color:     DefaultColor,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
	if dir, err := Home(); err == nil {
		cfg.DBPath = filepath.Join(dir, sqlitestore.DataFileName)
	}
	return cfg
}

// Load resolves the configuration. flagSet must already be parsed; only flags
// that were set on the command line override lower layers.
func Load(flagSet *flag.FlagSet, flags Flags, getenv Env) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Defaults()

	path, explicit := flags.Config, flags.Config != ""
	if !explicit {
		if v := getenv("TODO_CONFIG"); v != "" {
			path, explicit = v, true
		}
	}
	if !explicit {
		if dir, err := Home(); err == nil {
			path = filepath.Join(dir, ConfigFileName)
		}
	}
	if path != "" {
		if err := loadFile(cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg, getenv)
	applyFlags(cfg, flagSet, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	cfg.File = path
	return nil
}

func loadFromEnv(cfg *Config, getenv Env) {
	if v := getenv("TODO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := getenv("TODO_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func applyFlags(cfg *Config, flagSet *flag.FlagSet, flags Flags) {
	if flagSet == nil {
		return
	}
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DBPath = flags.DBPath
		case "theme":
			cfg.Theme = flags.Theme
		case "color":
			cfg.Color = flags.Color
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "log-format":
			cfg.LogFormat = flags.LogFormat
		}
	})
}

// DatabasePath returns the resolved database file, or ErrNoDatabase.
// It is checked only by commands that open the store.
func (c *Config) DatabasePath() (string, error) {
	if c.DBPath == "" {
		return "", ErrNoDatabase
	}
	return c.DBPath, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := ui.ThemeByName(c.Theme); err != nil {
		return err
	}
	if _, err := ui.ParseColorMode(c.Color); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormatter(c.LogFormat); err != nil {
		return err
	}
	return nil
}
