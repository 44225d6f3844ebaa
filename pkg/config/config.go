package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default tuning values for the scanner core.
const (
	DefaultProgressInterval = 100 * time.Millisecond
	DefaultMaxWorkers       = 16
	DefaultBufferFloor      = 50
	DefaultBufferCap        = 1000
)

// Config holds the scanner tuning configuration
type Config struct {
	ProgressInterval time.Duration // Minimum time between progress events per group
	MaxWorkers       int           // Background executor pool size
	BufferFloor      int           // Minimum event channel capacity
	BufferCap        int           // Maximum event channel capacity
	LogLevel         string        // zerolog level name
	ConfigFile       string        // Path to .env file (if loaded)
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Explicit parameters (passed as opts)
// 2. .env file (if exists)
// 3. Environment variables
// 4. Default values
//
// If opts is provided, it overrides all other sources.
// Otherwise, .env file overrides environment variables.
func Load(opts *Config) *Config {
	cfg := &Config{
		ProgressInterval: DefaultProgressInterval,
		MaxWorkers:       DefaultMaxWorkers,
		BufferFloor:      DefaultBufferFloor,
		BufferCap:        DefaultBufferCap,
		LogLevel:         "info",
	}

	// Environment variables first, then the .env file so it wins for local runs
	applyValues(cfg, os.Getenv)

	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if values, err := parseEnvFile(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
		} else {
			applyValues(cfg, func(key string) string { return values[key] })
			cfg.ConfigFile = envFile
		}
	}

	// Finally, apply explicit opts if provided (highest priority)
	if opts != nil {
		if opts.ProgressInterval != 0 {
			cfg.ProgressInterval = opts.ProgressInterval
		}
		if opts.MaxWorkers != 0 {
			cfg.MaxWorkers = opts.MaxWorkers
		}
		if opts.BufferFloor != 0 {
			cfg.BufferFloor = opts.BufferFloor
		}
		if opts.BufferCap != 0 {
			cfg.BufferCap = opts.BufferCap
		}
		if opts.LogLevel != "" {
			cfg.LogLevel = opts.LogLevel
		}
	}

	// Validate bounds
	if cfg.ProgressInterval < 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.BufferFloor < 1 {
		cfg.BufferFloor = DefaultBufferFloor
	}
	if cfg.BufferCap < cfg.BufferFloor {
		cfg.BufferCap = cfg.BufferFloor
	}

	return cfg
}

// applyValues applies configuration values from a lookup function.
// Missing or unparsable values leave the current setting untouched.
func applyValues(cfg *Config, get func(string) string) {
	if v := get("MS_PROGRESS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ProgressInterval = d
		}
	}
	if v := get("MS_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxWorkers = n
		}
	}
	if v := get("MS_BUFFER_FLOOR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BufferFloor = n
		}
	}
	if v := get("MS_BUFFER_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BufferCap = n
		}
	}
	if v := get("MS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// parseEnvFile reads KEY=VALUE pairs from a .env file
func parseEnvFile(filename string) (map[string]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE or KEY="VALUE"
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		values[key] = value
	}

	return values, scanner.Err()
}

// String returns a string representation of the config source
func (c *Config) String() string {
	if c.ConfigFile != "" {
		return fmt.Sprintf(".env file (%s)", c.ConfigFile)
	}
	return "environment variables"
}
