package analytics

import (
	"strconv"

	"github.com/aiinasia/core/internal/middleware"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	analytics := rg.Group("/analytics")
	{
		analytics.POST("/view/:articleId", middleware.OptionalAuth(), h.trackView)
		analytics.GET("/views/:articleId", h.articleViews)
		analytics.GET("/popular", h.popular)
		analytics.GET("/daily", authMW, h.daily)
	}

	picks := rg.Group("/editors-picks")
	{
		picks.GET("", h.editorsPicks)
		picks.PUT("/:articleId", authMW, h.setEditorsPick)
		picks.DELETE("/:articleId", authMW, h.removeEditorsPick)
	}

	rg.GET("/articles/:id/recommendations", h.recommendations)
	rg.POST("/newsletter/queue/:articleId", authMW, h.queueNewsletter)

	reader := rg.Group("/reader", authMW)
	{
		reader.GET("/bookmarks", h.bookmarks)
		reader.POST("/bookmarks/:articleId", h.toggleBookmark)
		reader.GET("/history", h.history)
	}
}

func (h *Handler) trackView(c *gin.Context) {
	err := h.svc.TrackView(c.Request.Context(), c.Param("articleId"), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) articleViews(c *gin.Context) {
	views, err := h.svc.ArticleViews(c.Request.Context(), c.Param("articleId"))
	if err != nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"article_id": c.Param("articleId"), "views": views})
}

func (h *Handler) popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	articles, err := h.svc.Popular(limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, articles)
}

func (h *Handler) daily(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	views, err := h.svc.DailySiteViews(c.Request.Context(), days)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, views)
}

func (h *Handler) editorsPicks(c *gin.Context) {
	articles, err := h.svc.EditorsPicks()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, articles)
}

func (h *Handler) setEditorsPick(c *gin.Context) {
	position, _ := strconv.Atoi(c.DefaultQuery("position", "0"))
	if err := h.svc.SetEditorsPick(c.Param("articleId"), position); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) removeEditorsPick(c *gin.Context) {
	if err := h.svc.RemoveEditorsPick(c.Param("articleId")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) recommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	articles, err := h.svc.Recommendations(c.Param("id"), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, articles)
}

func (h *Handler) queueNewsletter(c *gin.Context) {
	feature, err := h.svc.QueueNewsletterFeature(c.Param("articleId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if feature == nil {
		response.NotFound(c)
		return
	}
	response.Created(c, feature)
}

func (h *Handler) bookmarks(c *gin.Context) {
	articles, err := h.svc.Bookmarks(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, articles)
}

func (h *Handler) toggleBookmark(c *gin.Context) {
	saved, err := h.svc.ToggleBookmark(middleware.CurrentUserID(c), c.Param("articleId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"bookmarked": saved})
}

func (h *Handler) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	entries, err := h.svc.History(middleware.CurrentUserID(c), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, entries)
}
