package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/agile-ai-hub/intake-api/internal/models"
	"github.com/agile-ai-hub/intake-api/internal/services"
	apperrors "github.com/agile-ai-hub/intake-api/pkg/errors"
	"github.com/agile-ai-hub/intake-api/pkg/notion"
	"github.com/gin-gonic/gin"
)

const fallbackErrorMessage = "Server error"

type IntakeHandler struct {
	service services.IntakeServiceInterface
}

func NewIntakeHandler(service services.IntakeServiceInterface) *IntakeHandler {
	return &IntakeHandler{service: service}
}

// Intake accepts a contact submission and forwards it to Notion.
// It is registered for every method so the method gate answers with a JSON 405.
func (h *IntakeHandler) Intake(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		respondIntakeError(c, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}

	var req models.IntakeRequest
	// an empty body is an empty submission
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondIntakeError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return
		}
		// an unreadable body fails the request like any other step
		h.handleSubmitError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IntakeHandler) handleSubmitError(c *gin.Context, err error) {
	var apiErr *notion.APIError
	switch {
	case apperrors.Is(err, apperrors.ErrMissingConfiguration):
		respondIntakeError(c, http.StatusInternalServerError, err.Error(), err)
	case errors.As(err, &apiErr):
		// upstream text is relayed verbatim
		respondIntakeError(c, http.StatusBadGateway, apiErr.Body, err)
	default:
		msg := err.Error()
		if msg == "" {
			msg = fallbackErrorMessage
		}
		respondIntakeError(c, http.StatusInternalServerError, msg, err)
	}
}
