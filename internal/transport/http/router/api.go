package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-blog-api/internal/core/auth"
	"go-blog-api/internal/core/cache"
	"go-blog-api/internal/core/server"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/handler"
	mdw "go-blog-api/internal/transport/http/middleware"
)

// NewAPIEngine assembles the public listener: reads on the feed are open,
// writes and profile routes sit behind the auth gate.
func NewAPIEngine(
	l *zap.Logger,
	jwter *auth.JWTer,
	users domain.UserRepository,
	posts domain.PostRepository,
	rdb *cache.Cache,
) *gin.Engine {
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

	authH := handler.NewAuthHandler(users, jwter)
	userH := handler.NewUserHandler(users)
	postH := handler.NewPostHandler(posts, rdb)

	api := r.Group("/api/v1")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/posts", postH.List)
	api.GET("/posts/:id", postH.Get)

	gated := api.Group("")
	gated.Use(mdw.Authenticate(jwter, users))
	gated.POST("/posts", postH.Create)
	gated.PUT("/posts/:id", postH.Update)
	gated.DELETE("/posts/:id", postH.Delete)
	gated.GET("/users/profile", userH.GetProfile)
	gated.PUT("/users/profile", userH.UpdateProfile)

	return r
}
