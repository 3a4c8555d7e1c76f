package requesterresty

import (
	"crypto/tls"
	"maps"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-apigen/apigen/serialize"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option configures a Client, mirroring the teacher's ClientOption
// pattern (apply-in-order functional options over the constructed
// value).
type Option func(*Client) error

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.client.SetTimeout(timeout)
		c.logger.Info("timeout configured", zap.Duration("timeout", timeout))
		return nil
	}
}

// WithRetryCount sets the number of retries for failed requests.
func WithRetryCount(count int) Option {
	return func(c *Client) error {
		c.client.SetRetryCount(count)
		c.logger.Info("retry count configured", zap.Int("retry_count", count))
		return nil
	}
}

// WithRetryWaitTime sets the initial wait time between retries.
func WithRetryWaitTime(wait time.Duration) Option {
	return func(c *Client) error {
		c.client.SetRetryWaitTime(wait)
		c.logger.Info("retry wait time configured", zap.Duration("wait_time", wait))
		return nil
	}
}

// WithRetryMaxWaitTime sets the maximum wait time between retries.
func WithRetryMaxWaitTime(maxWait time.Duration) Option {
	return func(c *Client) error {
		c.client.SetRetryMaxWaitTime(maxWait)
		c.logger.Info("retry max wait time configured", zap.Duration("max_wait_time", maxWait))
		return nil
	}
}

// WithLogger replaces the default production logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithDebug turns on resty's request/response debug logging.
func WithDebug() Option {
	return func(c *Client) error {
		c.client.SetDebug(true)
		return nil
	}
}

// WithUserAgent overrides the default User-Agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.client.SetHeader("User-Agent", userAgent)
		c.userAgent = userAgent
		return nil
	}
}

// WithGlobalHeader adds one header sent on every request. Per-request
// headers in a RequestDescription override a global header with the same
// key (§6, applyHeaders).
func WithGlobalHeader(key, value string) Option {
	return func(c *Client) error {
		c.globalHeaders[key] = value
		return nil
	}
}

// WithGlobalHeaders adds several global headers at once.
func WithGlobalHeaders(headers map[string]string) Option {
	return func(c *Client) error {
		maps.Copy(c.globalHeaders, headers)
		return nil
	}
}

// WithProxy routes every request through proxyURL.
func WithProxy(proxyURL string) Option {
	return func(c *Client) error {
		c.client.SetProxy(proxyURL)
		return nil
	}
}

// WithTLSClientConfig installs custom TLS configuration.
func WithTLSClientConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) error {
		c.client.SetTLSClientConfig(tlsConfig)
		return nil
	}
}

// WithTransport installs a custom http.RoundTripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) error {
		c.client.SetTransport(transport)
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Testing
// and development only.
func WithInsecureSkipVerify() Option {
	return func(c *Client) error {
		c.client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		c.logger.Warn("TLS certificate verification disabled")
		return nil
	}
}

// WithRateLimit caps outgoing requests to the given rate, queuing callers
// via a token-bucket limiter (golang.org/x/time/rate) rather than
// rejecting them outright. burst is the maximum instantaneous burst
// size. Unlike the teacher's repo, which leans entirely on resty's retry
// machinery to ride out 429s after the fact, this lets a caller avoid
// tripping the remote rate limit in the first place.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) error {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
		c.logger.Info("rate limit configured",
			zap.Float64("requests_per_second", requestsPerSecond),
			zap.Int("burst", burst))
		return nil
	}
}

// WithTracing enables OpenTelemetry instrumentation of every HTTP
// request.
func WithTracing(config *OTelConfig) Option {
	return func(c *Client) error {
		return c.EnableTracing(config)
	}
}

// WithBodySerializer overrides the default JSON BodySerializer.
func WithBodySerializer(s serialize.BodySerializer) Option {
	return func(c *Client) error {
		c.bodySerializer = s
		return nil
	}
}

// WithQueryParamSerializer overrides the default "Serialized"
// QueryParamSerializer.
func WithQueryParamSerializer(s serialize.QueryParamSerializer) Option {
	return func(c *Client) error {
		c.queryParamSerializer = s
		return nil
	}
}

// WithPathParamSerializer overrides the default "Serialized"
// PathParamSerializer.
func WithPathParamSerializer(s serialize.PathParamSerializer) Option {
	return func(c *Client) error {
		c.pathParamSerializer = s
		return nil
	}
}

// WithCorrelationHeader sets a fresh uuid.NewString() value into header
// on every dispatched request, for distributed tracing correlation
// across services that don't otherwise share an OpenTelemetry trace
// context.
func WithCorrelationHeader(header string) Option {
	return func(c *Client) error {
		c.correlationHeader = header
		return nil
	}
}
