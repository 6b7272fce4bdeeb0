package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/isdelr/conduit-be/internal/database"
	"github.com/isdelr/conduit-be/internal/models"
	"github.com/isdelr/conduit-be/internal/services"
)

// newTestDB opens a private in-memory database, migrated and isolated per
// test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// registerUser creates an account through the real registration path.
func registerUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user, err := services.NewUserService(db).Register(
		context.Background(), username, username+"@example.com", "secret123")
	require.NoError(t, err)
	return user
}

// createArticle publishes an article through the real creation path.
func createArticle(t *testing.T, db *gorm.DB, authorID, title string, tags ...string) string {
	t.Helper()
	article, err := services.NewArticleService(db, nil).CreateArticle(
		context.Background(), authorID, services.ArticleDraft{
			Title:   title,
			Body:    "body of " + title,
			Status:  models.StatusPublished,
			TagList: tags,
		})
	require.NoError(t, err)
	return article.Slug
}
