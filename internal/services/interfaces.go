package services

import (
	"context"

	"github.com/agile-ai-hub/intake-api/internal/models"
)

// IntakeServiceInterface defines the interface for intake service operations
type IntakeServiceInterface interface {
	Submit(ctx context.Context, req *models.IntakeRequest) (*models.IntakeResponse, error)
}

// Ensure services implement their interfaces
var _ IntakeServiceInterface = (*IntakeService)(nil)
