package comment

import (
	"errors"

	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/pagination"
	"github.com/aiinasia/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger.Named("CommentService")}
}

// ListForArticle returns approved top-level comments with their approved
// replies nested under Children.
func (s *Service) ListForArticle(articleID string) ([]models.CommentModel, error) {
	var comments []models.CommentModel
	err := s.db.
		Where("article_id = ? AND state = ? AND parent_id IS NULL", articleID, models.CommentApproved).
		Preload("Children", "state = ?", models.CommentApproved).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// ListForModeration lists comments across all articles, optionally filtered
// by state, newest first.
func (s *Service) ListForModeration(q pagination.Query, state *models.CommentState) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).Order("created_at DESC")
	if state != nil {
		tx = tx.Where("state = ?", *state)
	}
	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

type CreateInput struct {
	ArticleID string
	Author    string
	Mail      string
	Text      string
	ParentID  *string
	IP        string
	Agent     string
}

// Create stores a visitor comment in pending state.
func (s *Service) Create(in CreateInput) (*models.CommentModel, error) {
	var article models.ArticleModel
	if err := s.db.First(&article, "id = ?", in.ArticleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if in.ParentID != nil {
		var parent models.CommentModel
		if err := s.db.First(&parent, "id = ? AND article_id = ?", *in.ParentID, in.ArticleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}

	c := models.CommentModel{
		ArticleID: in.ArticleID,
		Author:    in.Author,
		Mail:      in.Mail,
		Text:      in.Text,
		State:     models.CommentPending,
		ParentID:  in.ParentID,
		IP:        in.IP,
		Agent:     in.Agent,
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}
	s.logger.Info("comment created",
		zap.String("article_id", in.ArticleID),
		zap.String("comment_id", c.ID))
	return &c, nil
}

// SetState moves a comment to a moderation state.
func (s *Service) SetState(id string, state models.CommentState) (*models.CommentModel, error) {
	var c models.CommentModel
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.db.Model(&c).Update("state", state).Error; err != nil {
		return nil, err
	}
	c.State = state
	return &c, nil
}

// Delete removes a comment and its replies.
func (s *Service) Delete(id string) error {
	if err := s.db.Where("parent_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.CommentModel{}, "id = ?", id).Error
}
