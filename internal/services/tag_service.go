package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/isdelr/conduit-be/internal/models"
)

// TagServiceProvider defines the interface for tag services.
type TagServiceProvider interface {
	ListTags(ctx context.Context) ([]string, error)
}

// TagService provides read access to the global tag set.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a new TagService.
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// ListTags returns every tag name, sorted ascending.
func (s *TagService) ListTags(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
