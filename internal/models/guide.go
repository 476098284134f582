package models

// GuideSection is one ordered section of a guide.
type GuideSection struct {
	Title string `json:"title"`
	Body  string `json:"body"` // markdown
}

// GuideModel is an editorial guide authored in the admin tool.
type GuideModel struct {
	Base
	Title     string         `json:"title"     gorm:"not null"`
	Slug      string         `json:"slug"      gorm:"uniqueIndex;not null"`
	Intro     string         `json:"intro"     gorm:"type:text"` // markdown
	Sections  []GuideSection `json:"sections"  gorm:"type:longtext;serializer:json"`
	Published bool           `json:"published" gorm:"default:false;index"`
	AuthorID  *string        `json:"author_id" gorm:"index"`
}

func (GuideModel) TableName() string { return "guides" }
