// Package alphavantage provides a client for the Alpha Vantage GLOBAL_QUOTE
// endpoint, the optional live source for US quotes.
package alphavantage

import (
	"os"
	"time"
)

// Config holds configuration for the Alpha Vantage client.
type Config struct {
	APIKey  string        // API key; empty disables the source
	BaseURL string        // Base URL (e.g. "https://www.alphavantage.co")
	Timeout time.Duration // Request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("AV_BASE_URL")
	if base == "" {
		base = "https://www.alphavantage.co"
	}
	return Config{
		APIKey:  os.Getenv("AV_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
