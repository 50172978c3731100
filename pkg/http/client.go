package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// TransportFunc wraps an http.RoundTripper with additional behavior.
type TransportFunc func(http.RoundTripper) http.RoundTripper

// ClientOpt configures the underlying http.Client.
type ClientOpt func(*clientConfig)

type clientConfig struct {
	connTimeout           time.Duration
	requestTimeout        time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	insecureSkipVerify    bool
	transports            []TransportFunc
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		connTimeout:           30 * time.Second,
		requestTimeout:        30 * time.Second,
		keepAlive:             90 * time.Second,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
		idleConnTimeout:       90 * time.Second,
		maxIdleConns:          100,
		maxIdleConnsPerHost:   10,
	}
}

func WithConnTimeout(d time.Duration) ClientOpt {
	return func(c *clientConfig) { c.connTimeout = d }
}

func WithRequestTimeout(d time.Duration) ClientOpt {
	return func(c *clientConfig) { c.requestTimeout = d }
}

func WithKeepAlive(d time.Duration) ClientOpt {
	return func(c *clientConfig) { c.keepAlive = d }
}

func WithTLSHandshakeTimeout(d time.Duration) ClientOpt {
	return func(c *clientConfig) { c.tlsHandshakeTimeout = d }
}

func WithResponseHeaderTimeout(d time.Duration) ClientOpt {
	return func(c *clientConfig) { c.responseHeaderTimeout = d }
}

func WithIdleConnTimeout(d time.Duration) ClientOpt {
	return func(c *clientConfig) { c.idleConnTimeout = d }
}

func WithMaxIdleConns(n int) ClientOpt {
	return func(c *clientConfig) { c.maxIdleConns = n }
}

func WithMaxIdleConnsPerHost(n int) ClientOpt {
	return func(c *clientConfig) { c.maxIdleConnsPerHost = n }
}

func WithInsecureSkipVerify(skip bool) ClientOpt {
	return func(c *clientConfig) { c.insecureSkipVerify = skip }
}

func WithTransport(fn TransportFunc) ClientOpt {
	return func(c *clientConfig) { c.transports = append(c.transports, fn) }
}

func newClient(opts ...ClientOpt) *http.Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := net.Dialer{
		Timeout:   cfg.connTimeout,
		KeepAlive: cfg.keepAlive,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          cfg.maxIdleConns,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}

	if cfg.insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var rt http.RoundTripper = transport
	for _, fn := range cfg.transports {
		rt = fn(rt)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: rt,
	}
}
