package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"txnhistory/internal/chart"
	"txnhistory/internal/log"
)

// DefaultDateLayouts are tried in order on the first dated row of a file.
// Slash dates are month first; day-first statements set DATE_LAYOUTS.
var DefaultDateLayouts = []string{"2006-01-02", "01/02/2006", "2 Jan 2006"}

type Config struct {
	// Dataset
	DataBackend  string
	DatasetPaths []string
	HasHeader    bool
	DateLayouts  []string

	// Database
	SQLiteDBPath string

	// Chart layout
	ChartWidth          float64
	ChartHeight         float64
	ChartFraction       float64
	OverlayTop          float64
	OverlayBottom       float64
	CreditColour        string
	DebitColour         string
	OverlayCreditColour string
	OverlayDebitColour  string

	// Search
	PatternCacheSize int
	PatternCacheTTL  time.Duration
	InitialQuery     string

	LogLevel string
}

func Load() *Config {
	defaults := chart.DefaultOptions()

	cfg := &Config{
		DataBackend:  getEnv("DATA_BACKEND", "csv"),
		DatasetPaths: getEnvList("DATASET_PATHS", ",", []string{"bankhistory.csv"}),
		HasHeader:    getEnvBool("DATASET_HAS_HEADER", true),
		DateLayouts:  getEnvList("DATE_LAYOUTS", ";", DefaultDateLayouts),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/txnhistory.db"),

		ChartWidth:          getEnvFloat("CHART_WIDTH", defaults.NodeWidth),
		ChartHeight:         getEnvFloat("CHART_HEIGHT", defaults.NodeHeight),
		ChartFraction:       getEnvFloat("CHART_FRACTION", defaults.ChartFraction),
		OverlayTop:          getEnvFloat("OVERLAY_TOP", defaults.OverlayTop),
		OverlayBottom:       getEnvFloat("OVERLAY_BOTTOM", defaults.OverlayBottom),
		CreditColour:        getEnv("CREDIT_COLOUR", defaults.CreditColour),
		DebitColour:         getEnv("DEBIT_COLOUR", defaults.DebitColour),
		OverlayCreditColour: getEnv("OVERLAY_CREDIT_COLOUR", ""),
		OverlayDebitColour:  getEnv("OVERLAY_DEBIT_COLOUR", ""),

		PatternCacheSize: getEnvInt("PATTERN_CACHE_SIZE", 64),
		PatternCacheTTL:  getEnvDuration("PATTERN_CACHE_TTL", 30*time.Minute),
		InitialQuery:     getEnv("INITIAL_QUERY", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// ChartOptions maps the layout settings onto chart options
func (c *Config) ChartOptions() chart.Options {
	opts := chart.DefaultOptions()
	opts.NodeWidth = c.ChartWidth
	opts.NodeHeight = c.ChartHeight
	opts.ChartFraction = c.ChartFraction
	opts.OverlayTop = c.OverlayTop
	opts.OverlayBottom = c.OverlayBottom
	opts.CreditColour = c.CreditColour
	opts.DebitColour = c.DebitColour
	opts.OverlayCreditColour = c.OverlayCreditColour
	opts.OverlayDebitColour = c.OverlayDebitColour
	return opts
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"csv", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "csv" {
		if len(c.DatasetPaths) == 0 {
			errors = append(errors, "at least one dataset path is required when using csv backend")
		}
		for _, p := range c.DatasetPaths {
			if strings.TrimSpace(p) == "" {
				errors = append(errors, "dataset paths cannot contain empty entries")
				break
			}
		}
		if len(c.DateLayouts) == 0 {
			errors = append(errors, "at least one date layout is required when using csv backend")
		}
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if err := c.ChartOptions().Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.PatternCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid pattern cache size %d: must be at least 1", c.PatternCacheSize))
	} else if c.PatternCacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid pattern cache size %d: must be at most 10000", c.PatternCacheSize))
	}
	if c.PatternCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid pattern cache TTL %v: must not be negative", c.PatternCacheTTL))
	}

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a value on sep, dropping blank entries. Date layouts
// use ";" because layouts like "Jan 2, 2006" contain commas.
func getEnvList(key, sep string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}
