package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http2"
)

// DefaultEndpoint serves one random advice slip per request.
const DefaultEndpoint = "https://api.adviceslip.com/advice"

var (
	// ErrStatus reports a non-2xx response.
	ErrStatus = errors.New("advice: unexpected response status")
	// ErrPayload reports a body that is not {"slip":{"advice":"..."}} with non-empty advice.
	ErrPayload = errors.New("advice: malformed payload")
)

// FailureKind classifies why a fetch failed. It only changes what gets logged.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureStatus
	FailurePayload
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailurePayload:
		return "payload"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a fetch: Advice is set when Err is nil.
type Result struct {
	Advice string
	Err    error
}

// OK reports whether the result carries advice.
func (r Result) OK() bool {
	return r.Err == nil && r.Advice != ""
}

// Kind classifies the failure, FailureNone for a successful result.
func (r Result) Kind() FailureKind {
	switch {
	case r.Err == nil:
		return FailureNone
	case errors.Is(r.Err, ErrStatus):
		return FailureStatus
	case errors.Is(r.Err, ErrPayload):
		return FailurePayload
	default:
		return FailureTransport
	}
}

// Fetcher retrieves one piece of advice.
type Fetcher interface {
	Fetch(ctx context.Context) Result
}

// Client fetches advice over HTTP, bypassing every cache on the way.
type Client struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// NewClient returns a client for endpoint. A nil httpClient selects NewHTTPClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &Client{endpoint: endpoint, http: httpClient, now: time.Now}
}

// NewHTTPClient builds a client over an HTTP/2 capable transport. No overall
// timeout is set: requests end when the caller's context is cancelled.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		// HTTP/1.1 still works; only the upgrade is lost.
		return &http.Client{Transport: &http.Transport{Proxy: http.ProxyFromEnvironment}}
	}
	return &http.Client{Transport: transport}
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues one GET with a timestamp query parameter so no intermediary
// can answer from cache.
func (c *Client) Fetch(ctx context.Context) Result {
	target, err := c.requestURL()
	if err != nil {
		return Result{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store, no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("advice request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{Err: fmt.Errorf("%w: %s (%s)", ErrStatus, resp.Status, strings.TrimSpace(string(body)))}
	}

	text, err := Decode(resp.Body)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Advice: text}
}

func (c *Client) requestURL() (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("advice endpoint %q: %w", c.endpoint, err)
	}
	query := parsed.Query()
	query.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

type slipPayload struct {
	Slip *struct {
		Advice *string `json:"advice"`
	} `json:"slip"`
}

// Decode validates the response body and returns the trimmed advice text.
func Decode(r io.Reader) (string, error) {
	var payload slipPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if payload.Slip == nil {
		return "", fmt.Errorf("%w: missing slip", ErrPayload)
	}
	if payload.Slip.Advice == nil {
		return "", fmt.Errorf("%w: missing advice", ErrPayload)
	}
	text := strings.TrimSpace(*payload.Slip.Advice)
	if text == "" {
		return "", fmt.Errorf("%w: empty advice", ErrPayload)
	}
	return text, nil
}
