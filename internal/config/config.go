// Package config carries the scan configuration: built-in defaults,
// optionally overridden by environment variables (a .env file is honored
// when present) and command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full scan configuration.
type Config struct {
	Mode      string
	MinLength int
	MaxLength int
	Suffixes  []string
	Limit     int

	Workers  int
	DelayMin time.Duration
	DelayMax time.Duration
	Timeout  time.Duration
	Retries  int

	CheckpointSize int
	ResultsDir     string
	StartChars     string
	DNSServer      string
}

// Default mirrors the scanner's historical defaults: small worker pool,
// multi-second politeness delays, two retries.
func Default() Config {
	return Config{
		Mode:           "letters",
		MinLength:      2,
		MaxLength:      3,
		Suffixes:       []string{".im", ".pw", ".gs", ".com", ".de", ".ml"},
		Workers:        3,
		DelayMin:       2 * time.Second,
		DelayMax:       5 * time.Second,
		Timeout:        5 * time.Second,
		Retries:        2,
		CheckpointSize: 50,
		ResultsDir:     "results_dns",
		DNSServer:      "8.8.8.8:53",
	}
}

// LoadEnv overlays SCANNER_* environment variables onto the config. A .env
// file in the working directory is loaded first if present.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("SCANNER_RESULTS_DIR"); v != "" {
		c.ResultsDir = v
	}
	if v := os.Getenv("SCANNER_DNS_SERVER"); v != "" {
		c.DNSServer = v
	}
	if v := os.Getenv("SCANNER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv("SCANNER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}
}

// Validate rejects configurations the scanner cannot run with.
func (c Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("min length must be at least 1, got %d", c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("max length %d below min length %d", c.MaxLength, c.MinLength)
	}
	if c.DelayMax < c.DelayMin {
		return fmt.Errorf("delay max %s below delay min %s", c.DelayMax, c.DelayMin)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CheckpointSize < 1 {
		return fmt.Errorf("checkpoint size must be at least 1, got %d", c.CheckpointSize)
	}
	if len(c.Suffixes) == 0 {
		return fmt.Errorf("no suffixes configured")
	}
	return nil
}
