package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isdelr/conduit-be/internal/models"
	"github.com/isdelr/conduit-be/internal/views"
)

func TestNewUser(t *testing.T) {
	user := views.NewUser(models.User{
		Email:    "alice@x.com",
		Username: "alice",
	}, "a.b.c")

	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, "a.b.c", user.Token)
	// Unset bio/image present as empty strings, not omitted.
	assert.Equal(t, "", user.Bio)
	assert.Equal(t, "", user.Image)
}

func TestNewProfile(t *testing.T) {
	profile := views.NewProfile(models.User{Username: "bob", Bio: "hi"}, true)

	assert.Equal(t, "bob", profile.Username)
	assert.Equal(t, "hi", profile.Bio)
	assert.Equal(t, "", profile.Image)
	assert.True(t, profile.Following)
}

func TestNewArticle(t *testing.T) {
	article := models.Article{
		Slug:  "hello-abc123",
		Title: "Hello",
		Body:  "body",
		ArticleTags: []models.ArticleTag{
			{Tag: models.Tag{Name: "go"}},
			{Tag: models.Tag{Name: "web"}},
		},
		Author: models.User{Username: "carol"},
	}

	t.Run("tag names keep association order", func(t *testing.T) {
		shaped := views.NewArticle(article, true, 3, false)
		assert.Equal(t, []string{"go", "web"}, shaped.TagList)
		assert.True(t, shaped.Favorited)
		assert.EqualValues(t, 3, shaped.FavoritesCount)
		assert.Equal(t, "carol", shaped.Author.Username)
		assert.False(t, shaped.Author.Following)
	})

	t.Run("no tags shapes to an empty list, not nil", func(t *testing.T) {
		bare := article
		bare.ArticleTags = nil
		shaped := views.NewArticle(bare, false, 0, false)
		assert.NotNil(t, shaped.TagList)
		assert.Empty(t, shaped.TagList)
	})

	t.Run("description defaults to empty string", func(t *testing.T) {
		shaped := views.NewArticle(article, false, 0, false)
		assert.Equal(t, "", shaped.Description)
	})
}

func TestNewComment(t *testing.T) {
	shaped := views.NewComment(models.Comment{
		ID:     7,
		Body:   "nice",
		Author: models.User{Username: "dave"},
	}, true)

	assert.EqualValues(t, 7, shaped.ID)
	assert.Equal(t, "nice", shaped.Body)
	assert.Equal(t, "dave", shaped.Author.Username)
	assert.True(t, shaped.Author.Following)
}
