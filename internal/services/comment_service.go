package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/isdelr/conduit-be/internal/models"
	"github.com/isdelr/conduit-be/internal/views"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	ListComments(ctx context.Context, slug, viewerID string) ([]views.Comment, error)
	AddComment(ctx context.Context, authorID, slug, body string) (views.Comment, error)
	DeleteComment(ctx context.Context, actorID, slug string, commentID uint) error
}

// CommentService provides business logic for article comments.
type CommentService struct {
	db        *gorm.DB
	publisher Publisher
}

// NewCommentService creates a new CommentService. publisher may be nil.
func NewCommentService(db *gorm.DB, publisher Publisher) *CommentService {
	return &CommentService{db: db, publisher: publisher}
}

// ListComments returns the comments of an article, oldest first, shaped for
// the viewer.
func (s *CommentService) ListComments(ctx context.Context, slug, viewerID string) ([]views.Comment, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", article.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	following, err := s.followedAuthors(ctx, viewerID, comments)
	if err != nil {
		return nil, err
	}

	shaped := make([]views.Comment, 0, len(comments))
	for _, c := range comments {
		shaped = append(shaped, views.NewComment(c, following[c.AuthorID]))
	}
	return shaped, nil
}

// AddComment creates a comment on an article.
func (s *CommentService) AddComment(ctx context.Context, authorID, slug, body string) (views.Comment, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return views.Comment{}, err
	}

	comment := models.Comment{
		Body:      body,
		ArticleID: article.ID,
		AuthorID:  authorID,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return views.Comment{}, err
	}

	err = s.db.WithContext(ctx).Preload("Author").First(&comment, comment.ID).Error
	if err != nil {
		return views.Comment{}, err
	}

	// The author is the viewer here, and self-follow edges cannot exist.
	shaped := views.NewComment(comment, false)
	s.publish(EventCommentCreated, map[string]any{"slug": article.Slug, "comment": shaped})
	return shaped, nil
}

// DeleteComment removes a comment after checking, in order: the article
// exists, the comment exists on that article, and the actor authored it.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, slug string, commentID uint) error {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return err
	}

	var comment models.Comment
	err = s.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.ArticleID != article.ID {
		return ErrNotFound
	}
	if comment.AuthorID != actorID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Delete(&comment).Error
}

func (s *CommentService) findArticle(ctx context.Context, slug string) (models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, err
	}
	return article, nil
}

// followedAuthors resolves which comment authors the viewer follows, in one
// query. Anonymous viewers follow no one.
func (s *CommentService) followedAuthors(ctx context.Context, viewerID string, comments []models.Comment) (map[string]bool, error) {
	following := make(map[string]bool)
	if viewerID == "" || len(comments) == 0 {
		return following, nil
	}

	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}

	var follows []models.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id IN ?", viewerID, authorIDs).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	for _, f := range follows {
		following[f.FollowingID] = true
	}
	return following, nil
}

func (s *CommentService) publish(event string, payload any) {
	if s.publisher != nil {
		s.publisher.Publish(event, payload)
	}
}
