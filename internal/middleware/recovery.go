package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/pkg/logger"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

// Sentry 为每个请求挂载独立 hub，并在 panic 时上报后返回 500
func Sentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		if id := c.GetString("request_id"); id != "" {
			hub.Scope().SetTag("request_id", id)
		}
		ctx := sentry.SetHubOnContext(c.Request.Context(), hub)
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			if rec := recover(); rec != nil {
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				hub.RecoverWithContext(ctx, rec)
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				response.Error(c, http.StatusInternalServerError, internalMessage(rec))
			}
		}()
		c.Next()
	}
}

func internalMessage(rec interface{}) string {
	if gin.Mode() == gin.ReleaseMode {
		return "internal server error"
	}
	return fmt.Sprintf("internal server error: %v", rec)
}
