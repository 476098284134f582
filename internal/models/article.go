package models

import "time"

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// ArticleModel is a news article.
type ArticleModel struct {
	Base
	Title            string        `json:"title"              gorm:"not null"`
	Slug             string        `json:"slug"               gorm:"uniqueIndex;not null"`
	Content          Blocks        `json:"content"            gorm:"type:longtext"`
	Excerpt          string        `json:"excerpt"            gorm:"type:text"`
	Status           ArticleStatus `json:"status"             gorm:"default:'draft';index"`
	ArticleType      string        `json:"article_type"`
	AuthorID         *string       `json:"author_id"          gorm:"index"`
	Author           *UserModel    `json:"author,omitempty"   gorm:"foreignKey:AuthorID"`
	MetaTitle        string        `json:"meta_title"`
	MetaDescription  string        `json:"meta_description"   gorm:"type:text"`
	FeaturedImageURL string        `json:"featured_image_url" gorm:"type:text"`
	FeaturedImageAlt string        `json:"featured_image_alt"`
	PublishedAt      *time.Time    `json:"published_at"       gorm:"index"`
	ReadingTime      int           `json:"reading_time"       gorm:"default:1"`
	ViewCount        int           `json:"view_count"         gorm:"default:0"`
	ImportBatchID    *string       `json:"import_batch_id"    gorm:"index"`

	Categories []CategoryModel `json:"categories,omitempty" gorm:"many2many:article_categories;"`
	Tags       []TagModel      `json:"tags,omitempty"       gorm:"many2many:article_tags;"`
}

func (ArticleModel) TableName() string { return "articles" }

// ArticleCategory is the category link row. Primary marks the category whose
// slug feeds the article's canonical URL path.
type ArticleCategory struct {
	ArticleModelID  string `json:"article_id"  gorm:"primaryKey;column:article_model_id"`
	CategoryModelID string `json:"category_id" gorm:"primaryKey;column:category_model_id"`
	Primary         bool   `json:"primary"     gorm:"default:false"`
}

func (ArticleCategory) TableName() string { return "article_categories" }

// ArticleTag is the tag link row.
type ArticleTag struct {
	ArticleModelID string `json:"article_id" gorm:"primaryKey;column:article_model_id"`
	TagModelID     string `json:"tag_id"     gorm:"primaryKey;column:tag_model_id"`
}

func (ArticleTag) TableName() string { return "article_tags" }
