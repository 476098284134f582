package article

import "github.com/aiinasia/core/internal/models"

type CreateArticleDTO struct {
	Title            string               `json:"title" binding:"required"`
	Slug             string               `json:"slug" binding:"required"`
	Content          []models.ContentBlock `json:"content"`
	Excerpt          string               `json:"excerpt"`
	ArticleType      string               `json:"article_type"`
	MetaTitle        string               `json:"meta_title"`
	MetaDescription  string               `json:"meta_description"`
	FeaturedImageURL string               `json:"featured_image_url"`
	FeaturedImageAlt string               `json:"featured_image_alt"`
	CategoryIDs      []string             `json:"category_ids"`
	TagIDs           []string             `json:"tag_ids"`
}

type UpdateArticleDTO struct {
	Title            *string               `json:"title"`
	Slug             *string               `json:"slug"`
	Content          *[]models.ContentBlock `json:"content"`
	Excerpt          *string               `json:"excerpt"`
	ArticleType      *string               `json:"article_type"`
	MetaTitle        *string               `json:"meta_title"`
	MetaDescription  *string               `json:"meta_description"`
	FeaturedImageURL *string               `json:"featured_image_url"`
	FeaturedImageAlt *string               `json:"featured_image_alt"`
	CategoryIDs      *[]string             `json:"category_ids"`
	TagIDs           *[]string             `json:"tag_ids"`
}

// ListFilter narrows article listings.
type ListFilter struct {
	Status       models.ArticleStatus
	CategorySlug string
}
