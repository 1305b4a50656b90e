package middleware

import (
	"fmt"
	"net/http"

	"github.com/agile-ai-hub/intake-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const recoveredFallbackMessage = "Server error"

// RecoveryMiddleware turns a panic into a 500 {"ok":false,"error":...} response.
// The error text is the panic's message when there is one.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler { //nolint:errorlint // sentinel is compared by identity
				panic(recovered)
			}

			msg := panicMessage(recovered)
			logger.Error("Recovered from panic",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Any("panic", recovered),
				zap.Stack("stack"))

			_ = c.Error(fmt.Errorf("panic: %s", msg)) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
		}()

		c.Next()
	}
}

func panicMessage(recovered any) string {
	var msg string
	switch v := recovered.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	case fmt.Stringer:
		msg = v.String()
	}
	if msg == "" {
		return recoveredFallbackMessage
	}
	return msg
}
