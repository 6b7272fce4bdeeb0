package database

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/isdelr/conduit-be/internal/models"
	"github.com/isdelr/conduit-be/internal/slug"
)

// Seed inserts demo content for local development. It is a no-op when any
// user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := models.User{
		ID:           uuid.New().String(),
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		Bio:          "Demo account",
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&demo).Error; err != nil {
			return err
		}

		tagNames := []string{"angular", "node", "sqlite"}
		tags := make(map[string]models.Tag, len(tagNames))
		for _, name := range tagNames {
			tag := models.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
			tags[name] = tag
		}

		articles := []struct {
			title       string
			description string
			body        string
			tags        []string
		}{
			{
				title:       "Welcome to Conduit",
				description: "Getting started with the demo content",
				body:        "This article was created by the demo seed. Log in as demo@example.com to edit it.",
				tags:        []string{"angular", "node"},
			},
			{
				title:       "Storing articles in SQLite",
				description: "Notes on the default storage backend",
				body:        "The backend runs on SQLite out of the box and switches to Postgres via DB_DRIVER.",
				tags:        []string{"sqlite"},
			},
		}

		for _, a := range articles {
			article := models.Article{
				ID:          uuid.New().String(),
				Slug:        slug.Make(a.title),
				Title:       a.title,
				Description: a.description,
				Body:        a.body,
				Status:      models.StatusPublished,
				AuthorID:    demo.ID,
			}
			if err := tx.Create(&article).Error; err != nil {
				return err
			}
			for _, name := range a.tags {
				link := models.ArticleTag{ArticleID: article.ID, TagID: tags[name].ID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
			log.Info().Str("slug", article.Slug).Msg("Seeded demo article")
		}

		return nil
	})
}
