// Package views shapes stored records into the wire representations the
// client consumes, relative to an optional viewing actor. All defaulting
// (empty strings for unset bio/image/description) happens here, not in
// storage, and viewer-relative flags are always plain booleans.
package views

import (
	"time"

	"github.com/isdelr/conduit-be/internal/models"
)

// User is the authenticated-user representation. It is the only view that
// carries the token, and it omits the following flag.
type User struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// Profile is the public representation of a user, relative to a viewer.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// Article is the full article representation, relative to a viewer.
type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// Comment is the comment representation, relative to a viewer.
type Comment struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Body      string    `json:"body"`
	Author    Profile   `json:"author"`
}

// NewUser shapes a user plus their token into the authenticated-user view.
func NewUser(u models.User, token string) User {
	return User{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}
}

// NewProfile shapes a user into a profile. following must already be resolved
// against the viewer; it is false for anonymous viewers.
func NewProfile(u models.User, following bool) Profile {
	return Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

// NewArticle shapes an article whose Author and ArticleTags (with Tag) are
// loaded. favorited and authorFollowing must already be resolved against the
// viewer; favoritesCount is viewer-independent.
func NewArticle(a models.Article, favorited bool, favoritesCount int64, authorFollowing bool) Article {
	tagList := make([]string, 0, len(a.ArticleTags))
	for _, at := range a.ArticleTags {
		tagList = append(tagList, at.Tag.Name)
	}

	return Article{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tagList,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: favoritesCount,
		Author:         NewProfile(a.Author, authorFollowing),
	}
}

// NewComment shapes a comment whose Author is loaded.
func NewComment(c models.Comment, authorFollowing bool) Comment {
	return Comment{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		Author:    NewProfile(c.Author, authorFollowing),
	}
}
