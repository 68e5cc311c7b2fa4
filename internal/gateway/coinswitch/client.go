// Package coinswitch is the REST gateway to the CoinSwitch Pro API: price
// candlesticks, paginated closed-orders history, and algo-strategy stats.
package coinswitch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portview/internal/logger"

	"github.com/google/uuid"
)

const (
	candlestickPath  = "/pro/api/v1/prograph/getDataForCandlestick"
	closedOrdersPath = "/pro/api/v1/cspro/closed-orders"
	strategiesPath   = "/pro/api/v1/algo-trading/all-strategies"

	// The session credential travels as a cookie, not a header.
	sessionCookie = "st"

	maxBodySnippet = 4096
)

// AuditRecorder receives one record per outbound request. Implementations
// must not block; failures are the recorder's problem, not the caller's.
type AuditRecorder interface {
	RecordCall(endpoint string, page, status int, elapsed time.Duration, body []byte)
}

// Client talks to the CoinSwitch Pro REST API. The session token is supplied
// per call so one immutable client can serve concurrent users.
type Client struct {
	cfg        Config
	baseURL    *url.URL
	httpClient *http.Client
	audit      AuditRecorder
}

func NewClient(cfg Config) (*Client, error) {
	final := cfg.withDefaults()
	parsed, err := url.Parse(final.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid coinswitch base url: %w", err)
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if final.InsecureSkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true // #nosec G402
		}
	}
	return &Client{
		cfg:     final,
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   final.HTTPTimeout,
			Transport: transport,
		},
	}, nil
}

// SetAuditRecorder attaches an optional recorder for outbound calls.
func (c *Client) SetAuditRecorder(r AuditRecorder) {
	c.audit = r
}

// SetHTTPClient sets the HTTP client for testing.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// get performs one GET against path with the session cookie attached and
// returns the raw body. page is zero for non-paginated endpoints and is only
// used for error context and auditing.
func (c *Client) get(ctx context.Context, session, path string, page int, query url.Values) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &RemoteError{Endpoint: path, Page: page, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-request-id", uuid.NewString())
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: session})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Errorf("[coinswitch] GET %s page=%d failed: %v", path, page, err)
		return nil, &RemoteError{Endpoint: path, Page: page, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Endpoint: path, Page: page, Err: err}
	}
	elapsed := time.Since(start)
	if c.audit != nil {
		c.audit.RecordCall(path, page, resp.StatusCode, elapsed, body)
	}
	logger.Debugf("[coinswitch] GET %s page=%d status=%d bytes=%d in %s",
		path, page, resp.StatusCode, len(body), elapsed.Round(time.Millisecond))

	if resp.StatusCode >= 300 {
		return nil, &RemoteError{
			Endpoint: path,
			Page:     page,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(truncate(body, maxBodySnippet)))),
		}
	}
	return body, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
