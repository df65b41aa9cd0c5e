// Package config handles daemon configuration
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultIntervalMS is used when the interval argument is absent,
// non-numeric, or not positive.
const DefaultIntervalMS = 1000

type Config struct {
	Interval      time.Duration // time between capture cycle starts
	BaseDir       string        // root of the Screenshots tree
	StatusAddr    string        // status server bind address, empty = disabled
	SkipUnchanged bool          // skip saves when the screen has not changed
	LogLevel      string        // debug|info|warn|error
}

// Load builds the configuration from the command line and environment.
// args is the argument list after the program name; only the first entry
// is consulted (interval in milliseconds). Bad interval values fall back
// to the default silently.
func Load(args []string) *Config {
	interval := DefaultIntervalMS
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			interval = v
		}
	}

	return &Config{
		Interval:      time.Duration(interval) * time.Millisecond,
		BaseDir:       getEnv("HOME", "."),
		StatusAddr:    getEnv("STATUS_ADDR", ""),
		SkipUnchanged: getEnvBool("SKIP_UNCHANGED", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}
