package tag

import (
	"strings"

	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type tagDTO struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type mergeDTO struct {
	Into string `json:"into" binding:"required"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	tags := rg.Group("/tags")
	{
		tags.GET("", h.list)
		tags.GET("/:slug", h.get)
		tags.POST("", authMW, h.create)
		tags.POST("/:slug/merge", authMW, h.merge)
		tags.DELETE("/:slug", authMW, h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	var dto tagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.Create(dto.Name, dto.Slug)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) merge(c *gin.Context) {
	var dto mergeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.Merge(c.Param("slug"), dto.Into)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, t)
}

func (h *Handler) delete(c *gin.Context) {
	t, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.Delete(t.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
