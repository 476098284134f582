package models

// CommentState represents the moderation state of a comment.
type CommentState int

const (
	CommentPending  CommentState = 0
	CommentApproved CommentState = 1
	CommentSpam     CommentState = 2
)

// CommentModel represents a comment on an article. AI-generated comments are
// created in pending state and flagged so moderators can tell them apart.
type CommentModel struct {
	Base
	ArticleID     string         `json:"article_id"      gorm:"not null;index"`
	Author        string         `json:"author"          gorm:"not null"`
	Mail          string         `json:"mail"`
	Text          string         `json:"text"            gorm:"type:text;not null"`
	State         CommentState   `json:"state"           gorm:"default:0;index"`
	ParentID      *string        `json:"parent_id"       gorm:"index"`
	Children      []CommentModel `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	IP            string         `json:"ip"`
	Agent         string         `json:"agent"           gorm:"type:varchar(512)"`
	IsAIGenerated bool           `json:"is_ai_generated" gorm:"default:false;index"`
}

func (CommentModel) TableName() string { return "comments" }
