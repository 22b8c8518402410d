package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds the HTTP client used for upstream quote calls.
//
// http.DefaultClient has no timeout, so every outbound call goes through
// this client instead. The Transport is explicit: proxy from the
// environment, a short dial timeout (quote endpoints either answer fast or
// not at all), keep-alives for connection reuse across refresh ticks, and
// a capped idle pool.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
