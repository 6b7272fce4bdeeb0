package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/isdelr/conduit-be/internal/models"
	"github.com/isdelr/conduit-be/internal/slug"
	"github.com/isdelr/conduit-be/internal/views"
)

// ArticleDraft carries the fields of a new article.
type ArticleDraft struct {
	Title       string
	Description string
	Body        string
	Status      string
	TagList     []string
}

// ArticleChanges carries the optional fields of an article update. Nil means
// "leave unchanged", as does an empty title or status. A non-nil TagList
// rebuilds the association set wholesale: every existing link is dropped and
// the new list recreated.
type ArticleChanges struct {
	Title       *string
	Description *string
	Body        *string
	Status      *string
	TagList     *[]string
}

// ListArticlesOptions filters and pages the global article list.
type ListArticlesOptions struct {
	Tag       string
	Author    string
	Favorited string // username of the user whose favorites to list
	Status    string
	Limit     int
	Offset    int
}

// ArticleServiceProvider defines the interface for article services.
type ArticleServiceProvider interface {
	ListArticles(ctx context.Context, opts ListArticlesOptions, viewerID string) ([]views.Article, int64, error)
	FeedArticles(ctx context.Context, viewerID string, limit, offset int) ([]views.Article, int64, error)
	GetArticle(ctx context.Context, slug, viewerID string) (views.Article, error)
	CreateArticle(ctx context.Context, authorID string, draft ArticleDraft) (views.Article, error)
	UpdateArticle(ctx context.Context, actorID, slug string, changes ArticleChanges) (views.Article, error)
	DeleteArticle(ctx context.Context, actorID, slug string) error
	FavoriteArticle(ctx context.Context, userID, slug string) (views.Article, error)
	UnfavoriteArticle(ctx context.Context, userID, slug string) (views.Article, error)
}

// ArticleService provides business logic for articles, tags, and favorites.
type ArticleService struct {
	db        *gorm.DB
	publisher Publisher
}

// NewArticleService creates a new ArticleService. publisher may be nil when
// no realtime push is configured.
func NewArticleService(db *gorm.DB, publisher Publisher) *ArticleService {
	return &ArticleService{db: db, publisher: publisher}
}

// ListArticles returns a page of articles matching the filters, newest first,
// together with the unpaged match count. The page and the count are fetched
// in parallel.
func (s *ArticleService) ListArticles(ctx context.Context, opts ListArticlesOptions, viewerID string) ([]views.Article, int64, error) {
	filter := func(q *gorm.DB) *gorm.DB {
		if opts.Tag != "" {
			q = q.Where("articles.id IN (?)",
				s.db.Model(&models.ArticleTag{}).Select("article_tags.article_id").
					Joins("JOIN tags ON tags.id = article_tags.tag_id").
					Where("tags.name = ?", opts.Tag))
		}
		if opts.Author != "" {
			q = q.Where("articles.author_id IN (?)",
				s.db.Model(&models.User{}).Select("id").Where("username = ?", opts.Author))
		}
		if opts.Favorited != "" {
			q = q.Where("articles.id IN (?)",
				s.db.Model(&models.Favorite{}).Select("favorites.article_id").
					Joins("JOIN users ON users.id = favorites.user_id").
					Where("users.username = ?", opts.Favorited))
		}
		if opts.Status != "" {
			q = q.Where("articles.status = ?", opts.Status)
		}
		return q
	}

	return s.page(ctx, filter, opts.Limit, opts.Offset, viewerID)
}

// FeedArticles returns the page of articles written by authors the viewer
// follows, newest first.
func (s *ArticleService) FeedArticles(ctx context.Context, viewerID string, limit, offset int) ([]views.Article, int64, error) {
	filter := func(q *gorm.DB) *gorm.DB {
		return q.Where("articles.author_id IN (?)",
			s.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", viewerID))
	}

	return s.page(ctx, filter, limit, offset, viewerID)
}

// page runs the filtered row query and the count query concurrently and
// shapes the results for the viewer.
func (s *ArticleService) page(ctx context.Context, filter func(*gorm.DB) *gorm.DB, limit, offset int, viewerID string) ([]views.Article, int64, error) {
	var (
		articles []models.Article
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.withRelations(filter(s.db.WithContext(gctx).Model(&models.Article{}))).
			Order("articles.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&articles).Error
	})
	g.Go(func() error {
		return filter(s.db.WithContext(gctx).Model(&models.Article{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	shaped, err := s.shapeMany(ctx, articles, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return shaped, total, nil
}

// GetArticle returns a single article by slug, shaped for the viewer.
func (s *ArticleService) GetArticle(ctx context.Context, slugStr, viewerID string) (views.Article, error) {
	article, err := s.loadArticle(ctx, slugStr)
	if err != nil {
		return views.Article{}, err
	}
	return s.shapeOne(ctx, article, viewerID)
}

// CreateArticle creates an article for the author, upserting tags by name.
// Duplicate names in the tag list collapse to one, preserving first-seen
// order.
func (s *ArticleService) CreateArticle(ctx context.Context, authorID string, draft ArticleDraft) (views.Article, error) {
	status := draft.Status
	if status == "" {
		status = models.StatusDraft
	}

	article := models.Article{
		ID:          uuid.New().String(),
		Slug:        slug.Make(draft.Title),
		Title:       draft.Title,
		Description: draft.Description,
		Body:        draft.Body,
		Status:      status,
		AuthorID:    authorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return err
		}
		return s.attachTags(tx, article.ID, draft.TagList)
	})
	if err != nil {
		return views.Article{}, err
	}

	shaped, err := s.GetArticle(ctx, article.Slug, authorID)
	if err != nil {
		return views.Article{}, err
	}

	s.publish(EventArticleCreated, shaped)
	return shaped, nil
}

// UpdateArticle applies the changes after checking existence and then
// ownership, in that order. A title change regenerates the slug.
func (s *ArticleService) UpdateArticle(ctx context.Context, actorID, slugStr string, changes ArticleChanges) (views.Article, error) {
	article, err := s.findBySlug(ctx, slugStr)
	if err != nil {
		return views.Article{}, err
	}
	if article.AuthorID != actorID {
		return views.Article{}, ErrForbidden
	}

	// Empty title and status are ignored, so a blank field never erases the
	// title or leaves the article in an unnamed state.
	if changes.Title != nil && *changes.Title != "" {
		article.Title = *changes.Title
		article.Slug = slug.Make(*changes.Title)
	}
	if changes.Description != nil {
		article.Description = *changes.Description
	}
	if changes.Body != nil {
		article.Body = *changes.Body
	}
	if changes.Status != nil && *changes.Status != "" {
		article.Status = *changes.Status
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&article).Error; err != nil {
			return err
		}
		if changes.TagList != nil {
			if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
				return err
			}
			return s.attachTags(tx, article.ID, *changes.TagList)
		}
		return nil
	})
	if err != nil {
		return views.Article{}, err
	}

	shaped, err := s.GetArticle(ctx, article.Slug, actorID)
	if err != nil {
		return views.Article{}, err
	}

	s.publish(EventArticleUpdated, shaped)
	return shaped, nil
}

// DeleteArticle removes an article and its dependent records after checking
// existence and then ownership.
func (s *ArticleService) DeleteArticle(ctx context.Context, actorID, slugStr string) error {
	article, err := s.findBySlug(ctx, slugStr)
	if err != nil {
		return err
	}
	if article.AuthorID != actorID {
		return ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
	if err != nil {
		return err
	}

	s.publish(EventArticleDeleted, map[string]string{"slug": article.Slug})
	return nil
}

// FavoriteArticle marks the article as a favorite of the user. Re-favoriting
// is a no-op success; the count does not grow.
func (s *ArticleService) FavoriteArticle(ctx context.Context, userID, slugStr string) (views.Article, error) {
	article, err := s.findBySlug(ctx, slugStr)
	if err != nil {
		return views.Article{}, err
	}

	favorite := models.Favorite{UserID: userID, ArticleID: article.ID}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return views.Article{}, err
	}

	return s.GetArticle(ctx, slugStr, userID)
}

// UnfavoriteArticle removes the favorite edge if present.
func (s *ArticleService) UnfavoriteArticle(ctx context.Context, userID, slugStr string) (views.Article, error) {
	article, err := s.findBySlug(ctx, slugStr)
	if err != nil {
		return views.Article{}, err
	}

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, article.ID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return views.Article{}, err
	}

	return s.GetArticle(ctx, slugStr, userID)
}

// findBySlug loads a bare article row, without relations.
func (s *ArticleService) findBySlug(ctx context.Context, slugStr string) (models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Where("slug = ?", slugStr).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, err
	}
	return article, nil
}

// loadArticle loads an article with its author and ordered tag associations.
func (s *ArticleService) loadArticle(ctx context.Context, slugStr string) (models.Article, error) {
	var article models.Article
	err := s.withRelations(s.db.WithContext(ctx)).Where("slug = ?", slugStr).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, err
	}
	return article, nil
}

// withRelations preloads the author and the tag links in creation order.
func (s *ArticleService) withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("ArticleTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("article_tags.id ASC")
		}).
		Preload("ArticleTags.Tag")
}

// attachTags upserts each tag by name and links it to the article. Duplicate
// names collapse, keeping first-seen order.
func (s *ArticleService) attachTags(tx *gorm.DB, articleID string, tagList []string) error {
	seen := make(map[string]bool, len(tagList))
	for _, name := range tagList {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		link := models.ArticleTag{ArticleID: articleID, TagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *ArticleService) shapeOne(ctx context.Context, article models.Article, viewerID string) (views.Article, error) {
	shaped, err := s.shapeMany(ctx, []models.Article{article}, viewerID)
	if err != nil {
		return views.Article{}, err
	}
	return shaped[0], nil
}

// shapeMany resolves the viewer-relative flags and favorite counts for a
// batch of loaded articles with three queries instead of three per row.
func (s *ArticleService) shapeMany(ctx context.Context, articles []models.Article, viewerID string) ([]views.Article, error) {
	shaped := make([]views.Article, 0, len(articles))
	if len(articles) == 0 {
		return shaped, nil
	}

	articleIDs := make([]string, 0, len(articles))
	authorIDs := make([]string, 0, len(articles))
	for _, a := range articles {
		articleIDs = append(articleIDs, a.ID)
		authorIDs = append(authorIDs, a.AuthorID)
	}

	var countRows []struct {
		ArticleID string
		Total     int64
	}
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Select("article_id, COUNT(*) AS total").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&countRows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(countRows))
	for _, row := range countRows {
		counts[row.ArticleID] = row.Total
	}

	favorited := make(map[string]bool)
	following := make(map[string]bool)
	if viewerID != "" {
		var favs []models.Favorite
		err = s.db.WithContext(ctx).
			Where("user_id = ? AND article_id IN ?", viewerID, articleIDs).
			Find(&favs).Error
		if err != nil {
			return nil, err
		}
		for _, f := range favs {
			favorited[f.ArticleID] = true
		}

		var follows []models.Follow
		err = s.db.WithContext(ctx).
			Where("follower_id = ? AND following_id IN ?", viewerID, authorIDs).
			Find(&follows).Error
		if err != nil {
			return nil, err
		}
		for _, f := range follows {
			following[f.FollowingID] = true
		}
	}

	for _, a := range articles {
		shaped = append(shaped, views.NewArticle(a, favorited[a.ID], counts[a.ID], following[a.AuthorID]))
	}
	return shaped, nil
}

func (s *ArticleService) publish(event string, payload any) {
	if s.publisher != nil {
		s.publisher.Publish(event, payload)
	}
}
