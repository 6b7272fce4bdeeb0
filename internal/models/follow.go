package models

import "time"

// Follow records "user X follows user Y". Irreflexivity (no self-follow) is
// enforced at the service boundary, not by the schema.
type Follow struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"uniqueIndex:idx_follower_following;not null;type:varchar(36)"`
	FollowingID string    `gorm:"uniqueIndex:idx_follower_following;not null;type:varchar(36)"`
	CreatedAt   time.Time
}
