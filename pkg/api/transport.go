package api

import (
	"net"
	"net/http"
	"time"
)

// Connection pool settings sized for a single-host API client: one backend,
// a handful of concurrent requests, long-lived connections for streams.
const (
	maxIdleConns    = 10
	idleConnTimeout = 120 * time.Second
	dialTimeout     = 10 * time.Second
)

// newPooledTransport builds the shared http.Transport. Keep-alive pooling
// lets a stream connect reuse the connection the previous list call opened.
func newPooledTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConns,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,
	}
}
