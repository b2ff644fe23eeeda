// Package httpclient provides the pooled HTTP client used for every upstream read.
//
// IMPORTANT: Callers MUST close response bodies, even on non-2xx status.
//
// All clients share one transport so the many small item reads of a page
// reuse the same few connections to the Firebase host.
package httpclient

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultTimeout bounds a single request when the caller gives no timeout.
const DefaultTimeout = 30 * time.Second

var (
	// Shared transport for connection pooling
	sharedTransport *http.Transport
	transportOnce   sync.Once
)

// getSharedTransport returns the shared transport with connection pooling settings.
func getSharedTransport() *http.Transport {
	transportOnce.Do(func() {
		sharedTransport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   32,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		}
	})
	return sharedTransport
}

// New returns a client on the shared transport with the given timeout.
// A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: getSharedTransport(),
		Timeout:   timeout,
	}
}
