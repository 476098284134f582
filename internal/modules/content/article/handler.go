package article

import (
	"net/http"
	"strings"

	"github.com/aiinasia/core/internal/middleware"
	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/pagination"
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
	articles := rg.Group("/articles")
	{
		articles.GET("", middleware.OptionalAuth(), h.list)
		articles.GET("/slug/:slug", h.getBySlug)
		articles.GET("/:id", h.get)
		articles.POST("", authMW, h.create)
		articles.PUT("/:id", authMW, h.update)
		articles.POST("/:id/publish", authMW, h.publish)
		articles.POST("/:id/unpublish", authMW, h.unpublish)
		articles.POST("/:id/archive", authMW, h.archive)
		articles.DELETE("/:id", authMW, h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		CategorySlug: c.Query("category"),
	}
	// Anonymous visitors only see published articles.
	if status := c.Query("status"); status != "" && middleware.IsAuthenticated(c) {
		filter.Status = models.ArticleStatus(status)
	} else if !middleware.IsAuthenticated(c) {
		filter.Status = models.ArticlePublished
	}

	items, pag, err := h.svc.List(pagination.FromContext(c), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context) {
	art, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if art == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, art)
}

func (h *Handler) getBySlug(c *gin.Context) {
	art, redirect, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if art == nil && redirect != "" {
		c.Redirect(http.StatusMovedPermanently, redirect)
		return
	}
	if art == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, art)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	art, err := h.svc.Create(&dto, middleware.CurrentUserID(c))
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, art)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	art, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if art == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, art)
}

func (h *Handler) publish(c *gin.Context) {
	h.setStatus(c, models.ArticlePublished)
}

func (h *Handler) unpublish(c *gin.Context) {
	h.setStatus(c, models.ArticleDraft)
}

func (h *Handler) archive(c *gin.Context) {
	h.setStatus(c, models.ArticleArchived)
}

func (h *Handler) setStatus(c *gin.Context, status models.ArticleStatus) {
	art, err := h.svc.SetStatus(c.Param("id"), status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if art == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, art)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
