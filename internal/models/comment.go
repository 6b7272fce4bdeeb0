package models

import "time"

// Comment belongs to exactly one article and one author. There is no edit
// endpoint; the body is immutable once created.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Body      string    `json:"body" gorm:"not null"`
	ArticleID string    `json:"articleId" gorm:"index;not null;type:varchar(36)"`
	AuthorID  string    `json:"authorId" gorm:"not null;type:varchar(36)"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
