package app

import (
	"time"

	"github.com/aiinasia/core/internal/middleware"
	"github.com/aiinasia/core/internal/modules/auth"
	"github.com/aiinasia/core/internal/modules/content/article"
	"github.com/aiinasia/core/internal/modules/content/category"
	"github.com/aiinasia/core/internal/modules/content/comment"
	"github.com/aiinasia/core/internal/modules/content/guide"
	"github.com/aiinasia/core/internal/modules/content/tag"
	"github.com/aiinasia/core/internal/modules/dashboard"
	"github.com/aiinasia/core/internal/modules/importer"
	"github.com/aiinasia/core/internal/modules/stats/analytics"
	pkgredis "github.com/aiinasia/core/internal/pkg/redis"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Use(middleware.RateLimit(rc.Raw()))

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "aiinasia-core",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Content surfaces
	article.NewHandler(article.NewService(db)).RegisterRoutes(api, authMW)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	tag.NewHandler(tag.NewService(db)).RegisterRoutes(api, authMW)
	guide.NewHandler(guide.NewService(db)).RegisterRoutes(api, authMW)

	commentSvc := comment.NewService(db, a.logger)
	commentGen := comment.NewGenerator(commentSvc, a.cfg.AI, a.logger)
	comment.NewHandler(commentSvc, commentGen, db).RegisterRoutes(api, authMW)

	// Stats and curation
	analyticsSvc := analytics.NewService(db, rc, a.logger)
	analytics.NewHandler(analyticsSvc).RegisterRoutes(api, authMW)
	dashboard.NewHandler(dashboard.NewService(db, analyticsSvc)).RegisterRoutes(api, authMW)

	// Legacy content import
	importer.NewHandler(importer.NewService(db, a.logger)).RegisterRoutes(api, authMW)

	// Auth
	auth.NewHandler(auth.NewService(db, a.logger)).RegisterRoutes(api, authMW)
}
