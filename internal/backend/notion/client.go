// Package notion implements the service.Service interface against a Notion database.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"ntask/internal/clock"
	"ntask/internal/config"
	"ntask/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 15 * time.Second

	// versionHeader carries the pinned API version on every request.
	versionHeader = "Notion-Version"
)

// Schema names the database properties the backend reads and writes.
type Schema struct {
	Title  string
	Status string
	Date   string
}

// DefaultSchema matches the task database layout.
var DefaultSchema = Schema{
	Title:  "Task",
	Status: "Status",
	Date:   "Date",
}

// Media database property names.
const (
	mediaCaptionProperty = "Caption"
	mediaFilesProperty   = "Files & media"
	mediaDateProperty    = "Date"
)

// Client implements service.Service using the Notion REST API.
type Client struct {
	http            *http.Client
	baseURL         string
	version         string
	databaseID      string
	mediaDatabaseID string
	schema          Schema
	clock           clock.Clock
	log             zerolog.Logger
}

var _ service.Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithClock sets the clock used to resolve "today".
func WithClock(c clock.Clock) Option {
	return func(cl *Client) { cl.clock = c }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// WithSchema overrides the task database property names.
func WithSchema(s Schema) Option {
	return func(cl *Client) { cl.schema = s }
}

// New creates a Notion client authenticated with the integration token from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.RequireNotion(); err != nil {
		return nil, err
	}

	// The integration token never expires, so a static source is enough;
	// the oauth2 transport adds the bearer Authorization header.
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Notion.Token})
	httpClient := oauth2.NewClient(ctx, tokenSource)

	return NewWithHTTPClient(cfg, httpClient, opts...), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// The HTTP client is responsible for authorization.
func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client, opts ...Option) *Client {
	baseURL := cfg.Notion.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultNotionBaseURL
	}
	version := cfg.Notion.Version
	if version == "" {
		version = config.DefaultNotionVersion
	}

	c := &Client{
		http:            httpClient,
		baseURL:         strings.TrimRight(baseURL, "/"),
		version:         version,
		databaseID:      cfg.Notion.DatabaseID,
		mediaDatabaseID: cfg.Notion.MediaDatabaseID,
		schema:          DefaultSchema,
		clock:           clock.System,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends body as JSON and returns the status code and raw response body.
// Non-2xx statuses are not errors here; callers map them to their error kind.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return 0, nil, fmt.Errorf("notion: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("notion: create request: %w", err)
	}
	req.Header.Set(versionHeader, c.version)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, wrapError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("notion: read response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("notion request")

	return resp.StatusCode, respBody, nil
}

// encodeBody marshals a request body without HTML escaping, so property
// names like "Files & media" and URL query strings go out verbatim.
func encodeBody(body any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	// Check for timeout
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("notion: request timed out: %w", err)
	}

	return fmt.Errorf("notion: http request: %w", err)
}
