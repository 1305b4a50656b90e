package services

import (
	"context"
	"time"

	"github.com/agile-ai-hub/intake-api/config"
	"github.com/agile-ai-hub/intake-api/internal/models"
	apperrors "github.com/agile-ai-hub/intake-api/pkg/errors"
	"github.com/agile-ai-hub/intake-api/pkg/httpclient"
	"github.com/agile-ai-hub/intake-api/pkg/logger"
	"github.com/agile-ai-hub/intake-api/pkg/metrics"
	"github.com/agile-ai-hub/intake-api/pkg/notion"
	"go.uber.org/zap"
)

// IntakeService forwards contact submissions to the Notion lead database
type IntakeService struct {
	config     config.NotionConfig
	httpClient httpclient.Client
	now        func() time.Time
}

// NewIntakeService creates a new intake service instance
func NewIntakeService(cfg config.NotionConfig, httpClient httpclient.Client) *IntakeService {
	return &IntakeService{
		config:     cfg,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for the submission timestamp
func (s *IntakeService) WithClock(now func() time.Time) *IntakeService {
	s.now = now
	return s
}

// Submit creates one lead page for req. It returns an error wrapping
// ErrMissingConfiguration when a secret is absent (no outbound call is made),
// a *notion.APIError when Notion rejects the page, or any transport error as is.
func (s *IntakeService) Submit(ctx context.Context, req *models.IntakeRequest) (*models.IntakeResponse, error) {
	if s.config.Token == "" || s.config.DatabaseID == "" {
		metrics.IntakeSubmissions.WithLabelValues("not_configured").Inc()
		logger.Error("Intake called without Notion credentials",
			zap.Bool("token_set", s.config.Token != ""),
			zap.Bool("database_id_set", s.config.DatabaseID != ""))
		return nil, apperrors.MissingConfigurationError("NOTION_TOKEN / NOTION_DATABASE_ID")
	}

	page := models.NewLeadPage(s.config.DatabaseID, req, s.now())

	client := notion.NewClient(s.config.Token, s.httpClient, notion.WithBaseURL(s.config.APIURL))
	if err := client.CreatePage(ctx, page); err != nil {
		var apiErr *notion.APIError
		if apperrors.As(err, &apiErr) {
			metrics.IntakeSubmissions.WithLabelValues("upstream_rejected").Inc()
			logger.Warn("Notion rejected lead page", zap.Int("upstream_status", apiErr.StatusCode))
		} else {
			metrics.IntakeSubmissions.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.IntakeSubmissions.WithLabelValues("success").Inc()
	logger.Info("Lead page created",
		zap.String("source", req.SourceLabel()),
		zap.Bool("has_email", req.Email != ""),
		zap.Bool("has_message", req.Message != ""))

	return &models.IntakeResponse{OK: true}, nil
}
