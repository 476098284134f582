package guide

import (
	"strings"

	"github.com/aiinasia/core/internal/middleware"
	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type guideDTO struct {
	Title    string                `json:"title" binding:"required"`
	Slug     string                `json:"slug" binding:"required"`
	Intro    string                `json:"intro"`
	Sections []models.GuideSection `json:"sections"`
}

type guideUpdateDTO struct {
	Title     *string                `json:"title"`
	Slug      *string                `json:"slug"`
	Intro     *string                `json:"intro"`
	Sections  *[]models.GuideSection `json:"sections"`
	Published *bool                  `json:"published"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	guides := rg.Group("/guides")
	{
		guides.GET("", middleware.OptionalAuth(), h.list)
		guides.GET("/:slug", middleware.OptionalAuth(), h.get)
		guides.POST("", authMW, h.create)
		guides.PUT("/:id", authMW, h.update)
		guides.DELETE("/:id", authMW, h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	guides, err := h.svc.List(!middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, guides)
}

// get returns the rendered guide for readers, or the raw markdown when the
// caller is authenticated and asks for it with ?raw=1.
func (h *Handler) get(c *gin.Context) {
	g, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if g == nil || (!g.Published && !middleware.IsAuthenticated(c)) {
		response.NotFound(c)
		return
	}

	if c.Query("raw") == "1" && middleware.IsAuthenticated(c) {
		response.OK(c, g)
		return
	}

	rendered, err := h.svc.Render(g)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rendered)
}

func (h *Handler) create(c *gin.Context) {
	var dto guideDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authorID := middleware.CurrentUserID(c)
	g := models.GuideModel{
		Title:    dto.Title,
		Slug:     dto.Slug,
		Intro:    dto.Intro,
		Sections: dto.Sections,
	}
	if authorID != "" {
		g.AuthorID = &authorID
	}

	created, err := h.svc.Create(&g)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, created)
}

func (h *Handler) update(c *gin.Context) {
	var dto guideUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Intro != nil {
		updates["intro"] = *dto.Intro
	}
	if dto.Sections != nil {
		updates["sections"] = *dto.Sections
	}
	if dto.Published != nil {
		updates["published"] = *dto.Published
	}

	g, err := h.svc.Update(c.Param("id"), updates)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if g == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, g)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
