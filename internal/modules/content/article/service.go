package article

import (
	"errors"
	"fmt"
	"time"

	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/modules/importer"
	"github.com/aiinasia/core/internal/pkg/pagination"
	"github.com/aiinasia/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.ArticleModel, response.Pagination, error) {
	tx := s.db.Model(&models.ArticleModel{}).
		Preload("Categories").
		Preload("Tags").
		Order("COALESCE(published_at, created_at) DESC")
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.CategorySlug != "" {
		tx = tx.Joins("JOIN article_categories ac ON ac.article_model_id = articles.id").
			Joins("JOIN categories c ON c.id = ac.category_model_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	var items []models.ArticleModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.ArticleModel, error) {
	var art models.ArticleModel
	err := s.db.Preload("Categories").Preload("Tags").Preload("Author").
		First(&art, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &art, nil
}

// GetBySlug looks up an article by slug; when no article matches, the legacy
// URL mappings are consulted so imported articles stay reachable under their
// old paths.
func (s *Service) GetBySlug(slug string) (*models.ArticleModel, string, error) {
	var art models.ArticleModel
	err := s.db.Preload("Categories").Preload("Tags").Preload("Author").
		First(&art, "slug = ?", slug).Error
	if err == nil {
		return &art, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var mapping models.URLMappingModel
	err = s.db.First(&mapping, "old_path = ?", "/"+slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return nil, mapping.NewPath, nil
}

func (s *Service) Create(dto *CreateArticleDTO, authorID string) (*models.ArticleModel, error) {
	var count int64
	s.db.Model(&models.ArticleModel{}).Where("slug = ?", dto.Slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("slug already exists")
	}

	art := models.ArticleModel{
		Title:            dto.Title,
		Slug:             importer.SanitizeURL(dto.Slug),
		Content:          models.Blocks(dto.Content),
		Excerpt:          dto.Excerpt,
		Status:           models.ArticleDraft,
		ArticleType:      dto.ArticleType,
		MetaTitle:        dto.MetaTitle,
		MetaDescription:  dto.MetaDescription,
		FeaturedImageURL: importer.SanitizeURL(dto.FeaturedImageURL),
		FeaturedImageAlt: dto.FeaturedImageAlt,
		ReadingTime:      importer.CalculateReadingTime(dto.Content),
	}
	if authorID != "" {
		art.AuthorID = &authorID
	}
	if err := s.db.Create(&art).Error; err != nil {
		return nil, err
	}
	if err := s.replaceLinks(art.ID, dto.CategoryIDs, dto.TagIDs); err != nil {
		return nil, err
	}
	return s.GetByID(art.ID)
}

func (s *Service) Update(id string, dto *UpdateArticleDTO) (*models.ArticleModel, error) {
	art, err := s.GetByID(id)
	if err != nil || art == nil {
		return art, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Slug != nil {
		updates["slug"] = importer.SanitizeURL(*dto.Slug)
	}
	if dto.Content != nil {
		updates["content"] = models.Blocks(*dto.Content)
		updates["reading_time"] = importer.CalculateReadingTime(*dto.Content)
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.ArticleType != nil {
		updates["article_type"] = *dto.ArticleType
	}
	if dto.MetaTitle != nil {
		updates["meta_title"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if dto.FeaturedImageURL != nil {
		updates["featured_image_url"] = importer.SanitizeURL(*dto.FeaturedImageURL)
	}
	if dto.FeaturedImageAlt != nil {
		updates["featured_image_alt"] = *dto.FeaturedImageAlt
	}
	if len(updates) > 0 {
		if err := s.db.Model(art).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var cats, tags []string
	if dto.CategoryIDs != nil {
		cats = *dto.CategoryIDs
	}
	if dto.TagIDs != nil {
		tags = *dto.TagIDs
	}
	if dto.CategoryIDs != nil || dto.TagIDs != nil {
		if err := s.replaceLinksPartial(id, dto.CategoryIDs != nil, cats, dto.TagIDs != nil, tags); err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// SetStatus publishes, unpublishes or archives an article.
func (s *Service) SetStatus(id string, status models.ArticleStatus) (*models.ArticleModel, error) {
	art, err := s.GetByID(id)
	if err != nil || art == nil {
		return art, err
	}
	updates := map[string]interface{}{"status": status}
	if status == models.ArticlePublished && art.PublishedAt == nil {
		now := time.Now()
		updates["published_at"] = &now
	}
	if err := s.db.Model(art).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	s.db.Where("article_model_id = ?", id).Delete(&models.ArticleCategory{})
	s.db.Where("article_model_id = ?", id).Delete(&models.ArticleTag{})
	return s.db.Delete(&models.ArticleModel{}, "id = ?", id).Error
}

func (s *Service) replaceLinks(articleID string, categoryIDs, tagIDs []string) error {
	return s.replaceLinksPartial(articleID, true, categoryIDs, true, tagIDs)
}

func (s *Service) replaceLinksPartial(articleID string, setCats bool, categoryIDs []string, setTags bool, tagIDs []string) error {
	if setCats {
		if err := s.db.Where("article_model_id = ?", articleID).Delete(&models.ArticleCategory{}).Error; err != nil {
			return err
		}
		for i, cid := range categoryIDs {
			link := models.ArticleCategory{ArticleModelID: articleID, CategoryModelID: cid, Primary: i == 0}
			if err := s.db.Create(&link).Error; err != nil {
				return err
			}
		}
	}
	if setTags {
		if err := s.db.Where("article_model_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		for _, tid := range tagIDs {
			link := models.ArticleTag{ArticleModelID: articleID, TagModelID: tid}
			if err := s.db.Create(&link).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
