package inject

import (
	"net"
	"net/http"
	"time"
)

// HTTPConnectTimeout bounds dialing (and the TLS handshake) to the remote config service.
const HTTPConnectTimeout = 6 * time.Second

// HTTPReadTimeout bounds the wait for the remote config service to respond once connected.
const HTTPReadTimeout = 6 * time.Second

// NewConfigHTTPClient returns the client used for remote config requests, bounded by
// HTTPConnectTimeout and HTTPReadTimeout.
func NewConfigHTTPClient() *http.Client {
	return NewConfigHTTPClientWithTimeouts(HTTPConnectTimeout, HTTPReadTimeout)
}

// NewConfigHTTPClientWithTimeouts returns a config client that gives up when connecting
// takes longer than connect, or when the service takes longer than read to respond.
// Each request is bounded by these two timeouts and nothing else.
func NewConfigHTTPClientWithTimeouts(connect, read time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connect}
	return &http.Client{
		Timeout: connect + read,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   connect,
			ResponseHeaderTimeout: read,
			DisableKeepAlives:     true,
		},
	}
}
