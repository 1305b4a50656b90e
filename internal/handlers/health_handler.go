package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	notionConfigured func() bool
}

func NewHealthHandler(notionConfigured func() bool) *HealthHandler {
	return &HealthHandler{
		notionConfigured: notionConfigured,
	}
}

// Healthcheck reports liveness. Missing Notion secrets do not fail it:
// the intake endpoint itself answers those requests with an explicit 500.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"notion_configured": h.notionConfigured(),
	})
}
