package models

import "time"

// ReadingHistoryModel records that a reader opened an article.
type ReadingHistoryModel struct {
	Base
	ArticleID string     `json:"article_id" gorm:"not null;index"`
	ReaderID  string     `json:"reader_id"  gorm:"index"`
	ReadAt    *time.Time `json:"read_at"`
	Progress  float64    `json:"progress"   gorm:"default:0"`
}

func (ReadingHistoryModel) TableName() string { return "reading_history" }

// BookmarkModel is a reader's saved article.
type BookmarkModel struct {
	Base
	ArticleID string `json:"article_id" gorm:"not null;index"`
	ReaderID  string `json:"reader_id"  gorm:"not null;index"`
}

func (BookmarkModel) TableName() string { return "bookmarks" }
