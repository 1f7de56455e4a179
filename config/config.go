package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "MARKBOOK_"

type Config struct {
	LogLevel          string // debug, info, warn or error
	Summary           bool   // print a summary table after writing the report
	NoColor           bool
	SkipBadReferences bool // skip rows with unknown ids instead of failing
	DBDriver          string
	DBDSN             string
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		DBDriver: "sqlite",
	}
}

// Load reads .env from the working directory when it exists, then the
// MARKBOOK_* environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		lvl := strings.ToLower(strings.TrimSpace(v))
		switch lvl {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = lvl
		default:
			return Config{}, fmt.Errorf("invalid %sLOG_LEVEL: %q", envPrefix, v)
		}
	}

	var err error
	if cfg.Summary, err = boolVar(getenv, "SUMMARY"); err != nil {
		return Config{}, err
	}
	if cfg.NoColor, err = boolVar(getenv, "NO_COLOR"); err != nil {
		return Config{}, err
	}
	if cfg.SkipBadReferences, err = boolVar(getenv, "SKIP_BAD_REFERENCES"); err != nil {
		return Config{}, err
	}

	if v := getenv(envPrefix + "DB_DRIVER"); v != "" {
		drv := strings.ToLower(strings.TrimSpace(v))
		switch drv {
		case "sqlite", "postgres":
			cfg.DBDriver = drv
		default:
			return Config{}, fmt.Errorf("unsupported %sDB_DRIVER: %q", envPrefix, v)
		}
	}
	cfg.DBDSN = getenv(envPrefix + "DB_DSN")

	return cfg, nil
}

func boolVar(getenv func(string) string, name string) (bool, error) {
	v := getenv(envPrefix + name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %q", envPrefix, name, v)
	}
	return b, nil
}
