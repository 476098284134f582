package tag

import (
	"errors"
	"fmt"

	"github.com/aiinasia/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListItem is a tag with its article count.
type ListItem struct {
	models.TagModel
	ArticleCount int64 `json:"article_count"`
}

func (s *Service) List() ([]ListItem, error) {
	var tags []models.TagModel
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(tags))
	for _, t := range tags {
		var count int64
		s.db.Model(&models.ArticleTag{}).
			Where("tag_model_id = ?", t.ID).
			Count(&count)
		items = append(items, ListItem{TagModel: t, ArticleCount: count})
	}
	return items, nil
}

func (s *Service) GetBySlug(slug string) (*models.TagModel, error) {
	var t models.TagModel
	err := s.db.First(&t, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(name, slug string) (*models.TagModel, error) {
	var count int64
	s.db.Model(&models.TagModel{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("tag already exists")
	}

	t := models.TagModel{Name: name, Slug: slug}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Merge moves all article links from one tag onto another and removes the
// source tag. Imports auto-create tags, so near-duplicates accumulate.
func (s *Service) Merge(fromSlug, intoSlug string) (*models.TagModel, error) {
	from, err := s.GetBySlug(fromSlug)
	if err != nil || from == nil {
		return nil, err
	}
	into, err := s.GetBySlug(intoSlug)
	if err != nil || into == nil {
		return nil, err
	}
	if from.ID == into.ID {
		return into, nil
	}

	var links []models.ArticleTag
	if err := s.db.Where("tag_model_id = ?", from.ID).Find(&links).Error; err != nil {
		return nil, err
	}
	for _, link := range links {
		var exists int64
		s.db.Model(&models.ArticleTag{}).
			Where("article_model_id = ? AND tag_model_id = ?", link.ArticleModelID, into.ID).
			Count(&exists)
		if exists == 0 {
			s.db.Create(&models.ArticleTag{ArticleModelID: link.ArticleModelID, TagModelID: into.ID})
		}
	}
	if err := s.db.Where("tag_model_id = ?", from.ID).Delete(&models.ArticleTag{}).Error; err != nil {
		return nil, err
	}
	if err := s.db.Delete(&models.TagModel{}, "id = ?", from.ID).Error; err != nil {
		return nil, err
	}
	return into, nil
}

func (s *Service) Delete(id string) error {
	if err := s.db.Where("tag_model_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.TagModel{}, "id = ?", id).Error
}
