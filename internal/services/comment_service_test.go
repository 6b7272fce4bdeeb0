package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/conduit-be/internal/services"
)

func TestCommentService_AddComment(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCommentService(db, nil)
	ctx := context.Background()

	alice := registerUser(t, db, "alice")
	slug := createArticle(t, db, alice.ID, "Commented Article")

	t.Run("creates a comment with its author profile", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, alice.ID, slug, "first!")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, "first!", comment.Body)
		assert.Equal(t, "alice", comment.Author.Username)
		assert.False(t, comment.Author.Following)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		_, err := svc.AddComment(ctx, alice.ID, "missing-slug", "hello")
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCommentService(db, nil)
	profiles := newProfileService(db)
	ctx := context.Background()

	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	slug := createArticle(t, db, alice.ID, "Discussed Article")

	first, err := svc.AddComment(ctx, alice.ID, slug, "one")
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, bob.ID, slug, "two")
	require.NoError(t, err)

	t.Run("orders oldest first", func(t *testing.T) {
		comments, err := svc.ListComments(ctx, slug, "")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, first.ID, comments[0].ID)
		assert.Equal(t, second.ID, comments[1].ID)
	})

	t.Run("anonymous viewers never see following true", func(t *testing.T) {
		comments, err := svc.ListComments(ctx, slug, "")
		require.NoError(t, err)
		for _, c := range comments {
			assert.False(t, c.Author.Following)
		}
	})

	t.Run("author follow state is viewer-relative", func(t *testing.T) {
		_, err := profiles.FollowUser(ctx, bob.ID, "alice")
		require.NoError(t, err)

		comments, err := svc.ListComments(ctx, slug, bob.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.True(t, comments[0].Author.Following)  // alice's comment
		assert.False(t, comments[1].Author.Following) // bob's own comment
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCommentService(db, nil)
	ctx := context.Background()

	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	slug := createArticle(t, db, alice.ID, "Moderated Article")
	otherSlug := createArticle(t, db, alice.ID, "Other Article")

	comment, err := svc.AddComment(ctx, alice.ID, slug, "to be deleted")
	require.NoError(t, err)

	t.Run("missing article is not found", func(t *testing.T) {
		err := svc.DeleteComment(ctx, alice.ID, "missing-slug", comment.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("comment on a different article is not found", func(t *testing.T) {
		err := svc.DeleteComment(ctx, alice.ID, otherSlug, comment.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		err := svc.DeleteComment(ctx, bob.ID, slug, comment.ID)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("author can delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, alice.ID, slug, comment.ID))

		comments, err := svc.ListComments(ctx, slug, "")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestTagService_ListTags(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewTagService(db)
	ctx := context.Background()

	alice := registerUser(t, db, "alice")
	createArticle(t, db, alice.ID, "Tagged", "zeta", "alpha", "mid")

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, tags)
}
