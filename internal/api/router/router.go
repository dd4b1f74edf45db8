package router

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/config"
	_ "github.com/d60-Lab/social-schema/docs"
	"github.com/d60-Lab/social-schema/internal/api/handler"
	"github.com/d60-Lab/social-schema/internal/api/middleware"
	"github.com/d60-Lab/social-schema/internal/service"
	"github.com/d60-Lab/social-schema/pkg/metrics"
	"github.com/d60-Lab/social-schema/pkg/response"
)

// Setup 组装中间件与路由
func Setup(cfg *config.Config, db *gorm.DB, svc *service.Services) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{Code: http.StatusServiceUnavailable, Message: err.Error()})
			return
		}
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := handler.New(svc)
	auth := middleware.JWTAuth(svc.Auth)

	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(cfg.RateLimit))
	}
	{
		v1.POST("/auth/login", h.Login)

		users := v1.Group("/users")
		users.POST("", h.Register)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/posts", h.ListUserPosts)
		users.GET("/:id/following", h.ListFollowing)
		users.GET("/:id/followers", h.ListFollowers)
		users.GET("/:id/likes", h.ListUserLikes)
		users.GET("/:id/comments", h.ListUserComments)
		users.PATCH("/:id/active", auth, h.SetActive)
		users.PUT("/:id/password", auth, h.ChangePassword)
		users.DELETE("/:id", auth, h.DeleteUser)

		posts := v1.Group("/posts")
		posts.POST("", auth, h.CreatePost)
		posts.GET("/:id", h.GetPost)
		posts.PATCH("/:id", auth, h.UpdatePost)
		posts.DELETE("/:id", auth, h.DeletePost)
		posts.POST("/:id/like", auth, h.LikePost)
		posts.DELETE("/:id/like", auth, h.UnlikePost)
		posts.GET("/:id/likes", h.ListPostLikes)
		posts.POST("/:id/comments", auth, h.CreateComment)
		posts.GET("/:id/comments", h.ListPostComments)

		comments := v1.Group("/comments", auth)
		comments.PATCH("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)

		rel := v1.Group("/relations")
		rel.POST("/follow", auth, h.Follow)
		rel.POST("/unfollow", auth, h.Unfollow)
		rel.GET("/check", h.CheckFollow)
	}

	return r
}
