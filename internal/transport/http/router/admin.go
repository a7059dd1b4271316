package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-blog-api/internal/core/auth"
	"go-blog-api/internal/core/server"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/handler"
	mdw "go-blog-api/internal/transport/http/middleware"
)

// NewAdminEngine assembles the admin listener. The whole /admin/v1 group
// requires an authenticated admin.
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, users domain.UserRepository) *gin.Engine {
	r := server.NewEngine(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminH := handler.NewAdminHandler(users, jwter)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.Authenticate(jwter, users), mdw.RequireRole(domain.RoleAdmin))

	admin.GET("/users", adminH.ListUsers)
	admin.POST("/users", adminH.CreateAdmin)
	admin.POST("/users/:id/ban", adminH.BanUser)

	return r
}
