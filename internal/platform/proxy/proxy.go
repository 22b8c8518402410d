// Package proxy forwards browser requests to quote upstreams that reject
// cross-origin calls. Each route strips its local prefix, injects the
// headers the upstream requires and relaxes CORS on the way back.
package proxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Upstream describes one proxied quote provider.
type Upstream struct {
	Target         *url.URL
	Referer        string
	Origin         string
	Accept         string
	AcceptLanguage string
}

// SinaUpstream returns the hq.sinajs.cn upstream. SINA_PROXY_TARGET
// overrides the target for tests and mirrors.
func SinaUpstream() Upstream {
	return Upstream{
		Target:         mustParse(envOr("SINA_PROXY_TARGET", "https://hq.sinajs.cn")),
		Referer:        "https://finance.sina.com.cn/",
		Origin:         "https://finance.sina.com.cn",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		AcceptLanguage: "zh-CN,zh;q=0.8,en-US;q=0.5,en;q=0.3",
	}
}

// EastmoneyUpstream returns the push2.eastmoney.com upstream.
// EASTMONEY_PROXY_TARGET overrides the target.
func EastmoneyUpstream() Upstream {
	return Upstream{
		Target:         mustParse(envOr("EASTMONEY_PROXY_TARGET", "https://push2.eastmoney.com")),
		Referer:        "https://quote.eastmoney.com/",
		Origin:         "https://quote.eastmoney.com",
		Accept:         "application/json, text/plain, */*",
		AcceptLanguage: "zh-CN,zh;q=0.9,en;q=0.8",
	}
}

// Handler builds a gin handler that forwards everything under prefix to the
// upstream, with the prefix removed from the forwarded path.
func Handler(prefix string, up Upstream) gin.HandlerFunc {
	rp := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = up.Target.Scheme
			req.URL.Host = up.Target.Host
			req.URL.Path = strings.TrimPrefix(req.URL.Path, prefix)
			if req.URL.Path == "" {
				req.URL.Path = "/"
			}
			// The upstream checks the Host header, so forward as if the
			// request originated at its own origin.
			req.Host = up.Target.Host

			req.Header.Set("Referer", up.Referer)
			req.Header.Set("Origin", up.Origin)
			req.Header.Set("User-Agent", browserUserAgent)
			req.Header.Set("Accept", up.Accept)
			req.Header.Set("Accept-Language", up.AcceptLanguage)
		},
		ModifyResponse: func(resp *http.Response) error {
			h := resp.Header
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "86400")
			h.Set("Cache-Control", "public, max-age=60")
			h.Set("X-Content-Type-Options", "nosniff")
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("proxy request failed", "target", up.Target.Host, "path", r.URL.Path, "error", err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return func(c *gin.Context) {
		rp.ServeHTTP(c.Writer, c.Request)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic("proxy: invalid upstream URL " + raw)
	}
	return u
}
