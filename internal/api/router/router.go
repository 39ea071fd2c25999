package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/chpancrate/litreview/config"
	"github.com/chpancrate/litreview/internal/api/handler"
	"github.com/chpancrate/litreview/internal/middleware"
	"github.com/chpancrate/litreview/internal/service"
)

// New 组装路由与中间件
func New(cfg *config.Config, h *handler.Handler, denylist *service.TokenDenylist) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidators()
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(middleware.RateLimit(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Trace.Enabled {
		r.Use(otelgin.Middleware(cfg.Trace.Service))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/login", h.Login)
		}

		authed := v1.Group("")
		authed.Use(middleware.Auth(cfg.JWT.Secret, denylist))
		{
			authed.POST("/auth/logout", h.Logout)
			authed.POST("/auth/password", h.ChangePassword)

			authed.GET("/feed", h.Feed)
			authed.GET("/posts", h.Posts)
			authed.GET("/home", h.Home)

			authed.POST("/tickets", h.CreateTicket)
			authed.GET("/tickets/:id", h.GetTicket)
			authed.PUT("/tickets/:id", h.UpdateTicket)
			authed.DELETE("/tickets/:id", h.DeleteTicket)

			authed.POST("/reviews", h.CreateReview)
			authed.POST("/reviews/combined", h.CreateReviewWithTicket)
			authed.GET("/reviews/:id", h.GetReview)
			authed.PUT("/reviews/:id", h.UpdateReview)
			authed.DELETE("/reviews/:id", h.DeleteReview)

			authed.POST("/follows", h.Follow)
			authed.GET("/follows", h.ListRelations)
			authed.DELETE("/follows/:id", h.Unfollow)
		}
	}
	return r
}
