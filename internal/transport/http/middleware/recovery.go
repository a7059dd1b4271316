package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-blog-api/internal/transport/http/response"
)

// Recovery maps panics in handlers to a generic 500. The panic value and
// stack go to the server log only.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
			}
		}()
		c.Next()
	}
}
