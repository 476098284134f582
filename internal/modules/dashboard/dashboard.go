package dashboard

import (
	"github.com/aiinasia/core/internal/middleware"
	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/modules/stats/analytics"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Overview is the aggregate snapshot shown on the admin dashboard.
type Overview struct {
	Articles        int64 `json:"articles"`
	Published       int64 `json:"published"`
	Drafts          int64 `json:"drafts"`
	Categories      int64 `json:"categories"`
	Tags            int64 `json:"tags"`
	Comments        int64 `json:"comments"`
	PendingComments int64 `json:"pending_comments"`
	Guides          int64 `json:"guides"`
	ImportBatches   int64 `json:"import_batches"`
}

type Service struct {
	db        *gorm.DB
	analytics *analytics.Service
}

func NewService(db *gorm.DB, analyticsSvc *analytics.Service) *Service {
	return &Service{db: db, analytics: analyticsSvc}
}

func (s *Service) Overview() (*Overview, error) {
	var o Overview
	counts := []struct {
		model interface{}
		dest  *int64
		where []interface{}
	}{
		{&models.ArticleModel{}, &o.Articles, nil},
		{&models.ArticleModel{}, &o.Published, []interface{}{"status = ?", models.ArticlePublished}},
		{&models.ArticleModel{}, &o.Drafts, []interface{}{"status = ?", models.ArticleDraft}},
		{&models.CategoryModel{}, &o.Categories, nil},
		{&models.TagModel{}, &o.Tags, nil},
		{&models.CommentModel{}, &o.Comments, nil},
		{&models.CommentModel{}, &o.PendingComments, []interface{}{"state = ?", models.CommentPending}},
		{&models.GuideModel{}, &o.Guides, nil},
		{&models.MigrationLogModel{}, &o.ImportBatches, nil},
	}
	for _, c := range counts {
		tx := s.db.Model(c.model)
		if c.where != nil {
			tx = tx.Where(c.where[0], c.where[1:]...)
		}
		if err := tx.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &o, nil
}

// RecentBatches returns the latest import runs for the dashboard sidebar.
func (s *Service) RecentBatches(limit int) ([]models.MigrationLogModel, error) {
	if limit < 1 || limit > 20 {
		limit = 5
	}
	var logs []models.MigrationLogModel
	err := s.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	dash := rg.Group("/dashboard", authMW)
	{
		dash.GET("", h.overview)
	}
}

func (h *Handler) overview(c *gin.Context) {
	overview, err := h.svc.Overview()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	batches, err := h.svc.RecentBatches(5)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	popular, err := h.svc.analytics.Popular(5)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	daily, err := h.svc.analytics.DailySiteViews(c.Request.Context(), 7)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"overview":       overview,
		"recent_batches": batches,
		"popular":        popular,
		"daily_views":    daily,
		"viewer":         middleware.CurrentUserID(c),
	})
}
