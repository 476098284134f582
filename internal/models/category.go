package models

// CategoryModel represents an article category.
type CategoryModel struct {
	Base
	Name        string `json:"name"  gorm:"uniqueIndex;not null"`
	Slug        string `json:"slug"  gorm:"uniqueIndex;not null"`
	Description string `json:"description"`

	Articles []ArticleModel `json:"articles,omitempty" gorm:"many2many:article_categories;"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel represents an article tag. Tags are auto-created during legacy
// imports when a row names a tag that does not exist yet.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	Articles []ArticleModel `json:"articles,omitempty" gorm:"many2many:article_tags;"`
}

func (TagModel) TableName() string { return "tags" }
