// Package config holds the settings of the ragdesk terminal shell. The
// controller itself takes a plain controller.Config; nothing below this
// package reads the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"ragdesk/internal/controller"
	"ragdesk/internal/endpoint"
	"ragdesk/internal/logging"
)

type Config struct {
	Host                  string
	PollIntervalSeconds   int
	ProbeTimeoutSeconds   int
	RequestTimeoutSeconds int
	AltScreen             bool
	LogLevel              string
	LogFile               string
	LogConsole            bool
}

// LoadDotEnv reads .env from the working directory if present. Variables
// already set in the environment win. A missing file is not an error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return errors.Wrap(godotenv.Load(), "load .env")
}

// AddFlags registers every setting on fs with defaults taken from the
// environment.
func AddFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Host, "host", endpoint.HostFromEnv(), "Host the answering service runs on (port is fixed at 8000)")
	fs.IntVar(&cfg.PollIntervalSeconds, "poll-interval", envOrInt("RAGDESK_POLL_INTERVAL", 5), "Health probe interval seconds")
	fs.IntVar(&cfg.ProbeTimeoutSeconds, "probe-timeout", envOrInt("RAGDESK_PROBE_TIMEOUT", 3), "Health probe timeout seconds")
	fs.IntVar(&cfg.RequestTimeoutSeconds, "request-timeout", envOrInt("RAGDESK_REQUEST_TIMEOUT", 120), "Timeout seconds for ask, upload and other requests")
	fs.BoolVar(&cfg.AltScreen, "alt-screen", envOrBool("RAGDESK_ALT_SCREEN", true), "Use alternate screen buffer")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("RAGDESK_LOG_LEVEL", "info"), "Log level (trace|debug|info|warn|error)")
	fs.StringVar(&cfg.LogFile, "log-file", envOr("RAGDESK_LOG_FILE", logging.DefaultFile()), "Log file path")
	fs.BoolVar(&cfg.LogConsole, "log-console", envOrBool("RAGDESK_LOG_CONSOLE", false), "Log to stderr instead of the log file")
}

// Normalize clamps numeric settings into usable ranges. The probe timeout is
// kept below the poll interval so probes do not pile up.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.PollIntervalSeconds = clampInt(c.PollIntervalSeconds, 1, 300)
	c.ProbeTimeoutSeconds = clampInt(c.ProbeTimeoutSeconds, 1, 60)
	if c.ProbeTimeoutSeconds >= c.PollIntervalSeconds && c.PollIntervalSeconds > 1 {
		c.ProbeTimeoutSeconds = c.PollIntervalSeconds - 1
	}
	c.RequestTimeoutSeconds = clampInt(c.RequestTimeoutSeconds, 5, 900)
}

func (c Config) Controller() controller.Config {
	return controller.Config{
		PollInterval:   time.Duration(c.PollIntervalSeconds) * time.Second,
		ProbeTimeout:   time.Duration(c.ProbeTimeoutSeconds) * time.Second,
		RequestTimeout: time.Duration(c.RequestTimeoutSeconds) * time.Second,
	}
}

func (c Config) Logging() logging.Options {
	return logging.Options{Level: c.LogLevel, File: c.LogFile, Console: c.LogConsole}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return fallback
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
