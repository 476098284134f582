package category

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

type categoryDTO struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

type categoryUpdateDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.list)
		categories.GET("/:slug", h.get)
		categories.POST("", authMW, h.create)
		categories.PUT("/:slug", authMW, h.update)
		categories.DELETE("/:slug", authMW, h.delete)
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
	cat, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) create(c *gin.Context) {
	var dto categoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Create(dto.Name, dto.Slug, dto.Description)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) update(c *gin.Context) {
	existing, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFound(c)
		return
	}

	var dto categoryUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Update(existing.ID, dto.Name, dto.Slug, dto.Description)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) delete(c *gin.Context) {
	existing, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.Delete(existing.ID); err != nil {
		response.Conflict(c, err.Error())
		return
	}
	response.NoContent(c)
}
