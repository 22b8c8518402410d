// Package sina provides a client for the Sina Finance quote endpoint, the
// primary source for Chinese A-share quotes.
package sina

import (
	"os"
	"strings"
	"time"
)

// Config holds configuration for the Sina quote client.
type Config struct {
	BaseURLs  []string      // Candidate base URLs, attempted in order
	Referer   string        // Referer header the upstream requires
	Origin    string        // Origin header the upstream requires
	UserAgent string        // Browser-like User-Agent the upstream requires
	Timeout   time.Duration // Per-attempt request timeout
}

// LoadConfig loads Sina client configuration from environment variables.
// SINA_BASE_URLS is a comma-separated list; unset falls back to the public
// endpoint.
func LoadConfig() Config {
	bases := []string{"https://hq.sinajs.cn"}
	if v := os.Getenv("SINA_BASE_URLS"); v != "" {
		bases = bases[:0]
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				bases = append(bases, b)
			}
		}
	}
	return Config{
		BaseURLs:  bases,
		Referer:   "https://finance.sina.com.cn/",
		Origin:    "https://finance.sina.com.cn",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		Timeout:   10 * time.Second,
	}
}
