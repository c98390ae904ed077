// Package astralis is the typed client for the remote Astralis REST API.
// Authentication rides on an ambient session cookie held in the client's
// cookie jar; callers never pass tokens explicitly.
package astralis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	errs "github.com/astralisweb/astralis-client/internal/pkg/errors"
	"github.com/astralisweb/astralis-client/internal/pkg/httpx"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/utils"
)

const whoamiPath = "Account/me"

type Config struct {
	BaseURL       string
	SessionCookie string
	Timeout       time.Duration
	MaxRetries    int
}

func ConfigFromEnv(log *logger.Logger) Config {
	timeoutSec := utils.GetEnvAsInt("ASTRALIS_API_TIMEOUT_SECONDS", 30, log)
	maxRetries := utils.GetEnvAsInt("ASTRALIS_API_MAX_RETRIES", 3, log)
	return Config{
		BaseURL:       strings.TrimSpace(os.Getenv("ASTRALIS_API_BASE_URL")),
		SessionCookie: strings.TrimSpace(os.Getenv("ASTRALIS_SESSION_COOKIE")),
		Timeout:       time.Duration(timeoutSec) * time.Second,
		MaxRetries:    maxRetries,
	}
}

// HTTPError is returned for any non-2xx response from the remote API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "astralis: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("astralis http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type Client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	jar        *cookiejar.Jar
	maxRetries int

	// onUnauthorized fires when any call other than the whoami probe
	// comes back 401; the host uses it to flip the session state.
	onUnauthorized func()
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("missing ASTRALIS_API_BASE_URL")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = "astralis_session"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		log:        log.With("client", "AstralisClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Jar: jar},
		jar:        jar,
		maxRetries: cfg.MaxRetries,
	}, nil
}

func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// SessionToken returns the raw session cookie value, or "" when no session
// cookie is present. The value is opaque to this client; the session holder
// peeks at it for expiry display only.
func (c *Client) SessionToken() string {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == c.cfg.SessionCookie {
			return ck.Value
		}
	}
	return ""
}

// get retries on retryable statuses and transport timeouts; mutations go
// through doOnce directly so a write is never replayed.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	backoff := 500 * time.Millisecond

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		resp, err := c.doOnce(ctx, http.MethodGet, path, query, nil, out)
		if err == nil {
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("Astralis GET retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.doOnce(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	_, err := c.doOnce(ctx, http.MethodPut, path, nil, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.doOnce(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	full := c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, full, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, readErr
	}

	if resp.StatusCode == http.StatusUnauthorized && path != whoamiPath && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet {
		return resp, fmt.Errorf("%s: %w", path, errs.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp, nil
}

// IsNotFound reports whether err is the read-miss sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, errs.ErrNotFound)
}
