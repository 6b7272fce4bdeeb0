package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/isdelr/conduit-be/internal/models"
	"github.com/isdelr/conduit-be/internal/views"
)

// ProfileServiceProvider defines the interface for profile services.
type ProfileServiceProvider interface {
	GetProfile(ctx context.Context, username, viewerID string) (views.Profile, error)
	FollowUser(ctx context.Context, followerID, username string) (views.Profile, error)
	UnfollowUser(ctx context.Context, followerID, username string) (views.Profile, error)
}

// ProfileService provides business logic for public profiles and follows.
type ProfileService struct {
	db    *gorm.DB
	users UserServiceProvider
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *gorm.DB, users UserServiceProvider) *ProfileService {
	return &ProfileService{db: db, users: users}
}

// GetProfile returns a user's profile relative to an optional viewer.
func (s *ProfileService) GetProfile(ctx context.Context, username, viewerID string) (views.Profile, error) {
	target, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return views.Profile{}, err
	}

	following, err := s.isFollowing(ctx, viewerID, target.ID)
	if err != nil {
		return views.Profile{}, err
	}

	return views.NewProfile(target, following), nil
}

// FollowUser creates a follow edge from the actor to the named user.
// Re-following is a no-op success.
func (s *ProfileService) FollowUser(ctx context.Context, followerID, username string) (views.Profile, error) {
	target, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return views.Profile{}, err
	}
	if target.ID == followerID {
		return views.Profile{}, ErrSelfFollow
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: target.ID}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return views.Profile{}, err
	}

	return views.NewProfile(target, true), nil
}

// UnfollowUser removes the follow edge if present. Unfollowing someone the
// actor never followed is a no-op success.
func (s *ProfileService) UnfollowUser(ctx context.Context, followerID, username string) (views.Profile, error) {
	target, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return views.Profile{}, err
	}

	err = s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, target.ID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return views.Profile{}, err
	}

	return views.NewProfile(target, false), nil
}

// isFollowing reports whether a follow edge exists from the viewer to the
// target. Anonymous viewers (empty id) never follow anyone.
func (s *ProfileService) isFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
