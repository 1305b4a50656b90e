package handlers

import (
	"github.com/agile-ai-hub/intake-api/internal/models"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondIntakeError sends an {"ok":false,"error":...} body and records err for the request log
func respondIntakeError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, models.IntakeResponse{OK: false, Error: message})
}
