// Package di provides dependency injection factories for creating application components.
package di

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"sector_dashboard/internal/feature/quotes/adapters"
	"sector_dashboard/internal/feature/quotes/adapters/synthetic"
	"sector_dashboard/internal/platform/externalapi/alphavantage"
	"sector_dashboard/internal/platform/externalapi/eastmoney"
	"sector_dashboard/internal/platform/externalapi/sina"
	infrahttp "sector_dashboard/internal/platform/http"
	"sector_dashboard/internal/shared/ratelimiter"
)

// sinaRateLimit caps outbound Sina calls per minute; the endpoint bans hot
// pollers. SINA_RATE_LIMIT overrides it.
const sinaRateLimit = 30

// NewQuoteSource assembles the full source chain: Sina then Eastmoney for
// CN, Alpha Vantage for US, synthetic generation as the terminal fallback
// so a fetch never fails outright.
func NewQuoteSource() *adapters.SourceChain {
	sinaCfg := sina.LoadConfig()
	sinaClient := sina.NewClient(sinaCfg, infrahttp.NewHTTPClient(sinaCfg.Timeout), newSinaLimiter())

	eastCfg := eastmoney.LoadConfig()
	eastClient := eastmoney.NewClient(eastCfg, infrahttp.NewHTTPClient(eastCfg.Timeout))

	avCfg := alphavantage.LoadConfig()
	avClient := alphavantage.NewClient(avCfg, infrahttp.NewHTTPClient(avCfg.Timeout))

	fallback := synthetic.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

	return adapters.NewSourceChain(fallback, sinaClient, eastClient, avClient)
}

func newSinaLimiter() ratelimiter.Limiter {
	limit := sinaRateLimit
	if raw := os.Getenv("SINA_RATE_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return ratelimiter.NewRateLimiter(limit, time.Minute)
}
