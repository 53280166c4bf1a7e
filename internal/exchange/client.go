// Package exchange performs the single request/response round trip between
// the chat and the analyst backend.
package exchange

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/analyst-desk/analyst/internal/config"
	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/pkg/version"
)

// Config configures a Client.
type Config struct {
	// Endpoint is the full chat URL, e.g. http://localhost:8000/analyst_chat.
	Endpoint string
	// Timeout bounds one exchange. Zero means no client-side limit.
	Timeout time.Duration
	// HealthTimeout bounds Health. Zero uses constants.DefaultHealthTimeout.
	HealthTimeout time.Duration
	Logger        zerolog.Logger
}

// Client posts chat messages to the analyst endpoint. It never retries.
type Client struct {
	endpoint      string
	healthTimeout time.Duration
	http          *resty.Client
	logger        zerolog.Logger
}

// NewClient validates the endpoint and builds a client.
func NewClient(cfg Config) (*Client, error) {
	if err := config.ValidateEndpoint(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	logger := cfg.Logger.With().Str("component", "exchange").Logger()

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", version.UserAgent()).
		SetLogger(restyLogger{logger: logger})

	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = constants.DefaultHealthTimeout
	}

	return &Client{
		endpoint:      cfg.Endpoint,
		healthTimeout: healthTimeout,
		http:          httpClient,
		logger:        logger,
	}, nil
}

// Endpoint returns the chat URL this client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts {"message": text} and decodes the reply. Every failure matches
// ErrExchangeFailed.
func (c *Client) Send(ctx context.Context, text string) (*Reply, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(Request{Message: text}).
		Post(c.endpoint)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Exchange request failed")
		return nil, failure("post", 0, err)
	}

	status := resp.StatusCode()
	c.logger.Debug().
		Int("status", status).
		Dur("duration", resp.Time()).
		Int("bytes", len(resp.Body())).
		Msg("Exchange response received")

	if status < 200 || status > 299 {
		return nil, failure("post", status, fmt.Errorf("unexpected status %s", resp.Status()))
	}

	reply, err := DecodeReply(resp.Body())
	if err != nil {
		return nil, failure("decode", status, err)
	}
	reply.Status = status
	reply.Duration = resp.Time()

	return reply, nil
}

// Health checks GET /health on the endpoint's origin. It gives up after the
// configured health timeout even when exchanges themselves are unbounded.
func (c *Client) Health(ctx context.Context) error {
	healthURL, err := healthURL(c.endpoint)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get(healthURL)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("backend health check failed with status: %d", resp.StatusCode())
	}
	return nil
}

func healthURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	u.Path = "/health"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
