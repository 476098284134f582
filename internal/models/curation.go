package models

import "time"

// EditorsPickModel marks an article as featured on the homepage.
type EditorsPickModel struct {
	Base
	ArticleID string `json:"article_id" gorm:"not null;uniqueIndex"`
	Position  int    `json:"position"   gorm:"default:0"`
}

func (EditorsPickModel) TableName() string { return "editors_picks" }

// NewsletterFeatureModel queues an article for a newsletter issue.
type NewsletterFeatureModel struct {
	Base
	ArticleID string     `json:"article_id"  gorm:"not null;index"`
	IssueDate *time.Time `json:"issue_date"  gorm:"index"`
	Sent      bool       `json:"sent"        gorm:"default:false"`
}

func (NewsletterFeatureModel) TableName() string { return "newsletter_features" }

// RecommendationModel links an article to one recommended next read.
type RecommendationModel struct {
	Base
	ArticleID     string  `json:"article_id"     gorm:"not null;index"`
	RecommendedID string  `json:"recommended_id" gorm:"not null;index"`
	Score         float64 `json:"score"          gorm:"default:0"`
}

func (RecommendationModel) TableName() string { return "recommendations" }
