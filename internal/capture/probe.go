package capture

import (
	"fmt"
	"net"
	"net/url"

	"github.com/resumesavvy/interview-agent/internal/config"
	"go.uber.org/zap"
)

// Select probes the environment once and returns the transport every
// subsequent recording will use. A configured recognizer command selects the
// native transport; otherwise audio is relayed to the backend over a
// websocket. Both paths require a secure context towards the backend.
func Select(cfg config.CaptureConfig, backendBaseURL string, logger *zap.Logger) (Transport, error) {
	u, err := url.Parse(backendBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	if !secureContext(u) {
		return nil, fmt.Errorf("%w: backend %q is neither https nor loopback", ErrInsecureContext, backendBaseURL)
	}

	if cfg.RecognizerCommand != "" {
		logger.Info("using native speech recognition",
			zap.String("language", cfg.Language),
		)
		return NewNativeTransport(cfg, logger)
	}

	logger.Info("native recognition unavailable, using socket relay",
		zap.String("backend", backendBaseURL),
	)
	return NewRelayTransport(cfg, backendBaseURL, logger)
}

// secureContext mirrors the browser rule: https always qualifies, plain http
// only towards loopback.
func secureContext(u *url.URL) bool {
	if u.Scheme == "https" {
		return true
	}
	if u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
