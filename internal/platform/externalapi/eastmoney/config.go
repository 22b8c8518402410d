// Package eastmoney provides a client for the Eastmoney push2 quote API,
// the secondary source for Chinese A-share quotes.
package eastmoney

import (
	"os"
	"time"
)

// Config holds configuration for the Eastmoney client.
type Config struct {
	BaseURL   string        // Base URL (e.g. "https://push2.eastmoney.com")
	Referer   string        // Referer header the upstream requires
	UserAgent string        // Browser-like User-Agent
	Timeout   time.Duration // Request timeout
}

// LoadConfig loads Eastmoney configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("EASTMONEY_BASE_URL")
	if base == "" {
		base = "https://push2.eastmoney.com"
	}
	return Config{
		BaseURL:   base,
		Referer:   "https://quote.eastmoney.com/",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		Timeout:   10 * time.Second,
	}
}
