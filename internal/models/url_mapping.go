package models

// URLMappingModel is a redirect from a legacy article path to its new
// canonical path. Created during legacy imports when a row carries an
// old_slug, and removed when the owning batch is rolled back.
type URLMappingModel struct {
	Base
	OldPath       string  `json:"old_path"        gorm:"uniqueIndex;not null"`
	NewPath       string  `json:"new_path"        gorm:"not null"`
	ImportBatchID *string `json:"import_batch_id" gorm:"index"`
}

func (URLMappingModel) TableName() string { return "url_mappings" }
