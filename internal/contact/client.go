package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agile-ai-hub/intake-api/config"
	"github.com/agile-ai-hub/intake-api/internal/models"
	"github.com/agile-ai-hub/intake-api/pkg/httpclient"
	"github.com/agile-ai-hub/intake-api/pkg/logger"
	"go.uber.org/zap"
)

// ResponseError reports a non-2xx answer from the intake endpoint
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("intake endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("intake endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Result is the outcome of one submission attempt
type Result struct {
	StatusCode int
	Err        error
}

// OK reports whether the endpoint accepted the submission
func (r Result) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode <= 299
}

// Submitter sends a submission somewhere
type Submitter interface {
	Submit(ctx context.Context, sub Submission) Result
}

// Client posts submissions to the intake endpoint chosen at startup
type Client struct {
	endpoint   string
	httpClient httpclient.Client
}

// NewClient creates a submission client for the resolved configuration
func NewClient(cfg *config.ClientConfig, httpClient httpclient.Client) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
	}
}

// Endpoint returns the URL submissions are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts one submission. It never retries; the caller decides what a failure means.
func (c *Client) Submit(ctx context.Context, sub Submission) Result {
	start := time.Now()
	source := models.DefaultSource

	payload, err := json.Marshal(models.IntakeRequest{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
		Source:  &source,
	})
	if err != nil {
		return Result{Err: fmt.Errorf("failed to encode submission: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.LogAPICall("intake", "submit", "error", time.Since(start).Seconds(), zap.Error(err))
		return Result{Err: fmt.Errorf("failed to reach intake endpoint: %w", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	result := Result{StatusCode: resp.StatusCode}
	if !result.OK() {
		result.Err = &ResponseError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
		logger.LogAPICall("intake", "submit", "error", time.Since(start).Seconds(), zap.Int("status_code", resp.StatusCode))
		return result
	}

	logger.LogAPICall("intake", "submit", "success", time.Since(start).Seconds(), zap.Int("status_code", resp.StatusCode))
	return result
}
