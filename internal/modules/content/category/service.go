package category

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

// ListItem is a category with its article count.
type ListItem struct {
	models.CategoryModel
	ArticleCount int64 `json:"article_count"`
}

func (s *Service) List() ([]ListItem, error) {
	var categories []models.CategoryModel
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(categories))
	for _, cat := range categories {
		var count int64
		s.db.Model(&models.ArticleCategory{}).
			Where("category_model_id = ?", cat.ID).
			Count(&count)
		items = append(items, ListItem{CategoryModel: cat, ArticleCount: count})
	}
	return items, nil
}

func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	err := s.db.First(&cat, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(name, slug, description string) (*models.CategoryModel, error) {
	var count int64
	s.db.Model(&models.CategoryModel{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("category already exists")
	}

	cat := models.CategoryModel{Name: name, Slug: slug, Description: description}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Update(id string, name, slug, description *string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if slug != nil {
		updates["slug"] = *slug
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) > 0 {
		if err := s.db.Model(&cat).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

// Delete removes a category. Categories with linked articles cannot be
// deleted so imported URL paths stay resolvable.
func (s *Service) Delete(id string) error {
	var count int64
	s.db.Model(&models.ArticleCategory{}).
		Where("category_model_id = ?", id).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("category has %d linked articles", count)
	}
	return s.db.Delete(&models.CategoryModel{}, "id = ?", id).Error
}
