package comment

import (
	"context"
	"errors"
	"strconv"

	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/pagination"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
	gen *Generator
	db  *gorm.DB
}

func NewHandler(svc *Service, gen *Generator, db *gorm.DB) *Handler {
	return &Handler{svc: svc, gen: gen, db: db}
}

type createCommentDTO struct {
	Author   string  `json:"author" binding:"required"`
	Mail     string  `json:"mail"`
	Text     string  `json:"text" binding:"required"`
	ParentID *string `json:"parent_id"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	comments := rg.Group("/comments")
	{
		comments.GET("/article/:articleId", h.listForArticle)
		comments.POST("/article/:articleId", h.create)
		comments.GET("", authMW, h.listForModeration)
		comments.POST("/:id/approve", authMW, h.approve)
		comments.POST("/:id/spam", authMW, h.spam)
		comments.POST("/article/:articleId/generate", authMW, h.generate)
		comments.DELETE("/:id", authMW, h.delete)
	}
}

func (h *Handler) listForArticle(c *gin.Context) {
	comments, err := h.svc.ListForArticle(c.Param("articleId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, comments)
}

func (h *Handler) listForModeration(c *gin.Context) {
	var state *models.CommentState
	if raw := c.Query("state"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 2 {
			response.BadRequest(c, "state must be 0, 1 or 2")
			return
		}
		s := models.CommentState(v)
		state = &s
	}

	comments, pag, err := h.svc.ListForModeration(pagination.FromContext(c), state)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, comments, pag)
}

func (h *Handler) create(c *gin.Context) {
	var dto createCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.svc.Create(CreateInput{
		ArticleID: c.Param("articleId"),
		Author:    dto.Author,
		Mail:      dto.Mail,
		Text:      dto.Text,
		ParentID:  dto.ParentID,
		IP:        c.ClientIP(),
		Agent:     c.Request.UserAgent(),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if comment == nil {
		response.NotFoundMsg(c, "article or parent comment not found")
		return
	}
	response.Created(c, comment)
}

func (h *Handler) approve(c *gin.Context) {
	h.setState(c, models.CommentApproved)
}

func (h *Handler) spam(c *gin.Context) {
	h.setState(c, models.CommentSpam)
}

func (h *Handler) setState(c *gin.Context, state models.CommentState) {
	comment, err := h.svc.SetState(c.Param("id"), state)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if comment == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, comment)
}

func (h *Handler) generate(c *gin.Context) {
	if !h.gen.Enabled() {
		response.BadRequest(c, "AI comment generation is not configured")
		return
	}

	var article models.ArticleModel
	if err := h.db.First(&article, "id = ?", c.Param("articleId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	comment, err := h.gen.Generate(context.Background(), &article)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, comment)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
