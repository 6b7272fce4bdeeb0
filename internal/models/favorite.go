package models

import "time"

// Favorite records "user X favorited article Y". The unique pair index makes
// re-favoriting a conflict, which the service layer turns into a no-op.
type Favorite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"uniqueIndex:idx_user_article;not null;type:varchar(36)"`
	ArticleID string    `gorm:"uniqueIndex:idx_user_article;not null;type:varchar(36)"`
	CreatedAt time.Time
}
