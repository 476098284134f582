package analytics

import (
	"errors"

	"github.com/aiinasia/core/internal/models"
	"gorm.io/gorm"
)

// Bookmarks returns the reader's saved articles, newest first.
func (s *Service) Bookmarks(readerID string) ([]models.ArticleModel, error) {
	var ids []string
	if err := s.db.Model(&models.BookmarkModel{}).
		Where("reader_id = ?", readerID).
		Order("created_at DESC").
		Pluck("article_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.ArticleModel{}, nil
	}
	var articles []models.ArticleModel
	err := s.db.Where("id IN ?", ids).Find(&articles).Error
	return articles, err
}

// ToggleBookmark saves or removes a bookmark and reports the new state.
func (s *Service) ToggleBookmark(readerID, articleID string) (bool, error) {
	var existing models.BookmarkModel
	err := s.db.First(&existing, "reader_id = ? AND article_id = ?", readerID, articleID).Error
	if err == nil {
		return false, s.db.Unscoped().Delete(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	bm := models.BookmarkModel{ReaderID: readerID, ArticleID: articleID}
	return true, s.db.Create(&bm).Error
}

// History returns the reader's recent reading history.
func (s *Service) History(readerID string, limit int) ([]models.ReadingHistoryModel, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var entries []models.ReadingHistoryModel
	err := s.db.Where("reader_id = ?", readerID).
		Order("read_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// Recommendations returns the highest scored next reads for an article.
func (s *Service) Recommendations(articleID string, limit int) ([]models.ArticleModel, error) {
	if limit < 1 || limit > 20 {
		limit = 5
	}
	var ids []string
	if err := s.db.Model(&models.RecommendationModel{}).
		Where("article_id = ?", articleID).
		Order("score DESC").
		Limit(limit).
		Pluck("recommended_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.ArticleModel{}, nil
	}
	var articles []models.ArticleModel
	err := s.db.Where("id IN ? AND status = ?", ids, models.ArticlePublished).Find(&articles).Error
	return articles, err
}

// EditorsPicks returns the curated homepage articles in position order.
func (s *Service) EditorsPicks() ([]models.ArticleModel, error) {
	var picks []models.EditorsPickModel
	if err := s.db.Order("position ASC").Find(&picks).Error; err != nil {
		return nil, err
	}
	articles := make([]models.ArticleModel, 0, len(picks))
	for _, p := range picks {
		var art models.ArticleModel
		if err := s.db.First(&art, "id = ? AND status = ?", p.ArticleID, models.ArticlePublished).Error; err != nil {
			continue
		}
		articles = append(articles, art)
	}
	return articles, nil
}

// SetEditorsPick adds or repositions an article on the homepage.
func (s *Service) SetEditorsPick(articleID string, position int) error {
	var existing models.EditorsPickModel
	err := s.db.First(&existing, "article_id = ?", articleID).Error
	if err == nil {
		return s.db.Model(&existing).Update("position", position).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	pick := models.EditorsPickModel{ArticleID: articleID, Position: position}
	return s.db.Create(&pick).Error
}

// RemoveEditorsPick drops an article from the homepage curation.
func (s *Service) RemoveEditorsPick(articleID string) error {
	return s.db.Unscoped().
		Where("article_id = ?", articleID).
		Delete(&models.EditorsPickModel{}).Error
}

// QueueNewsletterFeature schedules an article for the next newsletter issue.
func (s *Service) QueueNewsletterFeature(articleID string) (*models.NewsletterFeatureModel, error) {
	var art models.ArticleModel
	if err := s.db.First(&art, "id = ?", articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	feature := models.NewsletterFeatureModel{ArticleID: articleID}
	if err := s.db.Create(&feature).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}
