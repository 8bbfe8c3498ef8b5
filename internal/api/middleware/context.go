package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dinedecide/internal/api/handlers"
	"dinedecide/internal/core/session"
	"dinedecide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout 為請求加上逾時；逾時且尚未寫出回應時回傳 504
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", handlers.RequestID(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrorResponse{
				Code:    common.ErrCodeGatewayTimeout,
				Message: "Request timeout",
			})
		}
	}
}

// InjectSession 將 Session 放入 gin context
func InjectSession(s *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handlers.SessionKey, s)
		c.Next()
	}
}
