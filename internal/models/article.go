package models

import "time"

// Article statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article represents a single post, owned by exactly one author.
type Article struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug        string       `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Body        string       `json:"body" gorm:"not null"`
	Status      string       `json:"status" gorm:"not null;default:draft"`
	AuthorID    string       `json:"authorId" gorm:"index;not null;type:varchar(36)"`
	Author      User         `json:"-" gorm:"foreignKey:AuthorID"`
	ArticleTags []ArticleTag `json:"-"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ArticleTag links an article to a tag. The autoincrement ID preserves
// association-creation order, which is the order tagList is rendered in.
type ArticleTag struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ArticleID string `gorm:"uniqueIndex:idx_article_tag;not null;type:varchar(36)"`
	TagID     uint   `gorm:"uniqueIndex:idx_article_tag;not null"`
	Tag       Tag    `gorm:"foreignKey:TagID"`
}

func (ArticleTag) TableName() string { return "article_tags" }
