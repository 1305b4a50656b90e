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

	apperrors "github.com/agile-ai-hub/intake-api/pkg/errors"
	"github.com/agile-ai-hub/intake-api/pkg/httpclient"
	"github.com/agile-ai-hub/intake-api/pkg/logger"
	"github.com/agile-ai-hub/intake-api/pkg/metrics"
	"github.com/agile-ai-hub/intake-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Notion API root
	DefaultBaseURL = "https://api.notion.com/v1"

	// APIVersion is sent as the Notion-Version header on every request
	APIVersion = "2022-06-28"

	// maxErrorBody caps how much of an upstream error body is kept
	maxErrorBody = 64 * 1024
)

// APIError is returned when Notion answers with a non-2xx status.
// Body holds the upstream response text verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion api returned status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return apperrors.ErrUpstream
}

// Client talks to the Notion REST API with a bearer integration token
type Client struct {
	token      string
	baseURL    string
	httpClient httpclient.Client
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL points the client at another API root (used by tests and proxies)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// NewClient creates a Notion client
func NewClient(token string, httpClient httpclient.Client, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreatePage creates a page in a database. It makes exactly one request and never retries.
func (c *Client) CreatePage(ctx context.Context, page *CreatePageRequest) error {
	const operation = "create_page"
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "notion.create_page",
		attribute.String("notion.database_id", page.Parent.DatabaseID),
		attribute.Int("notion.children", len(page.Children)),
	)
	defer span.End()

	err := c.createPage(ctx, page)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	duration := metrics.MeasureDuration(start)
	metrics.NotionRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.NotionRequestTotal.WithLabelValues(operation, status).Inc()

	fields := []zap.Field{zap.String("database_id", page.Parent.DatabaseID)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogAPICall("notion", operation, status, duration, fields...)

	return err
}

func (c *Client) createPage(ctx context.Context, page *CreatePageRequest) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return apperrors.InternalError("failed to encode page: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewReader(payload))
	if err != nil {
		return apperrors.InternalError("failed to build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call notion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return fmt.Errorf("failed to read notion error response: %w", readErr)
		}
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
