package pool

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config configures the connection pool.
type Config struct {
	// MaxConnsPerHost caps total connections per target host.
	// Default: 64
	MaxConnsPerHost int

	// MaxIdleConnsPerHost caps idle connections kept per target host.
	// Default: 8
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection is kept before being
	// closed. Default: 90 seconds.
	IdleConnTimeout time.Duration

	// DialTimeout bounds establishing a new connection.
	// Default: 10 seconds.
	DialTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	// Default: 10 seconds.
	TLSHandshakeTimeout time.Duration
}

// Pool is an explicitly owned HTTP connection pool. It is process-wide
// shared state by convention: construct one per application, pass it to
// every flow that needs it, and Close it on shutdown to release pooled
// connections. There is no hidden global.
type Pool struct {
	config    Config
	transport *http.Transport
	client    *http.Client
}

// New creates a connection pool. Every outbound request goes through an
// instrumented transport that records a client span per attempt.
func New(config Config) *Pool {
	// Apply defaults
	if config.MaxConnsPerHost <= 0 {
		config.MaxConnsPerHost = 64
	}
	if config.MaxIdleConnsPerHost <= 0 {
		config.MaxIdleConnsPerHost = 8
	}
	if config.IdleConnTimeout <= 0 {
		config.IdleConnTimeout = 90 * time.Second
	}
	if config.DialTimeout <= 0 {
		config.DialTimeout = 10 * time.Second
	}
	if config.TLSHandshakeTimeout <= 0 {
		config.TLSHandshakeTimeout = 10 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: config.DialTimeout,
		}).DialContext,
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: config.TLSHandshakeTimeout,
	}

	return &Pool{
		config:    config,
		transport: transport,
		client: &http.Client{
			// No client-level timeout: response time bounds belong to the
			// dispatch flow's buffer deadline.
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// Do sends one request and returns the streamed response. The response
// body is live and read-once; callers own draining and closing it.
func (p *Pool) Do(req *http.Request) (*http.Response, error) {
	return p.client.Do(req)
}

// Config returns the pool configuration with defaults applied.
func (p *Pool) Config() Config {
	return p.config
}

// Close releases idle pooled connections. In-flight requests are not
// interrupted.
func (p *Pool) Close() {
	p.transport.CloseIdleConnections()
}
