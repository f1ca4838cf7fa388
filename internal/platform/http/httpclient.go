package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds the client used for exchange API calls.
//
// http.DefaultClient has no timeout, so every upstream call goes through a
// client whose Timeout bounds the whole request (dial, TLS, headers, body).
// The transport honours HTTP_PROXY, keeps idle connections to the single
// upstream host warm between passes, and caps dial and TLS handshake time
// below the request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
