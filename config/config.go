package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// General
	Env       string // "dev" uses the console log writer
	LogLevel  string
	OutputDir string // root for shop/, product/, category/ CSV output

	// Politeness
	RespectRobots bool
	DelayProfile  string // "cautious", "normal", "aggressive"
	RatePerSecond float64
	RateBurst     int

	// Harvesting
	MaxConcurrent    int  // bound on category fan-out
	AdaptivePaging   bool // stop before the requested page count when the gateway reports no next page
	HeadlessFallback bool // browser bootstrap when the plain GET yields no cookies

	// MCP HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Env:              "dev",
		LogLevel:         "info",
		OutputDir:        ".",
		RespectRobots:    true,
		DelayProfile:     "normal",
		RatePerSecond:    2.0,
		RateBurst:        3,
		MaxConcurrent:    5,
		AdaptivePaging:   true,
		HeadlessFallback: true,
		HTTPPort:         "8080",
	}
}

// LoadFromEnv loads .env (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("TOKREV_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("TOKREV_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TOKREV_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("TOKREV_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("TOKREV_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("TOKREV_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("TOKREV_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("TOKREV_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("TOKREV_ADAPTIVE_PAGING"); v == "false" {
		c.AdaptivePaging = false
	}
	if v := os.Getenv("TOKREV_HEADLESS_FALLBACK"); v == "false" {
		c.HeadlessFallback = false
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("TOKREV_API_KEY"); v != "" {
		c.APIKey = v
	}
}
