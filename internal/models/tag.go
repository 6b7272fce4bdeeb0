package models

// Tag is a label shared across articles. Tags are never deleted once
// referenced; orphaned tags may persist.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}
