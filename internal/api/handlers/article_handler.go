package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/services"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
)

// ArticleHandler handles article CRUD, listing, and favorites.
type ArticleHandler struct {
	articles services.ArticleServiceProvider
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles services.ArticleServiceProvider) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

type createArticlePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Status      string   `json:"status"`
	TagList     []string `json:"tagList"`
}

// Validate checks the creation payload.
func (p createArticlePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Body, validation.Required),
		validation.Field(&p.Status, validation.In("draft", "published")),
	)
}

type updateArticlePayload struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	Status      *string   `json:"status"`
	TagList     *[]string `json:"tagList"`
}

// Validate checks the update payload; all fields are optional.
func (p updateArticlePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Status, validation.In("draft", "published")),
	)
}

// parsePaging reads limit/offset query parameters, applying the default page
// size and its cap.
func parsePaging(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// List returns a filtered page of articles, newest first.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	query := r.URL.Query()

	articles, total, err := h.articles.ListArticles(r.Context(), services.ListArticlesOptions{
		Tag:       query.Get("tag"),
		Author:    query.Get("author"),
		Favorited: query.Get("favorited"),
		Status:    query.Get("status"),
		Limit:     limit,
		Offset:    offset,
	}, auth.ViewerID(r.Context()))
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"articles":      articles,
		"articlesCount": total,
	})
}

// Feed returns the page of articles by authors the actor follows.
func (h *ArticleHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)

	articles, total, err := h.articles.FeedArticles(r.Context(), auth.ViewerID(r.Context()), limit, offset)
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"articles":      articles,
		"articlesCount": total,
	})
}

// Get returns a single article by slug.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.articles.GetArticle(r.Context(), slug, auth.ViewerID(r.Context()))
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}

// Create creates an article owned by the actor.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Article createArticlePayload `json:"article"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Article.Validate(); err != nil {
		respondValidationError(w, err)
		return
	}

	article, err := h.articles.CreateArticle(r.Context(), auth.ViewerID(r.Context()), services.ArticleDraft{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		Status:      req.Article.Status,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"article": article})
}

// Update applies partial changes to an article owned by the actor.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req struct {
		Article updateArticlePayload `json:"article"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Article.Validate(); err != nil {
		respondValidationError(w, err)
		return
	}

	article, err := h.articles.UpdateArticle(r.Context(), auth.ViewerID(r.Context()), slug, services.ArticleChanges{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		Status:      req.Article.Status,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}

// Delete removes an article owned by the actor.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.articles.DeleteArticle(r.Context(), auth.ViewerID(r.Context()), slug); err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Favorite marks the article as a favorite of the actor.
func (h *ArticleHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.articles.FavoriteArticle(r.Context(), auth.ViewerID(r.Context()), slug)
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}

// Unfavorite removes the actor's favorite edge if present.
func (h *ArticleHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.articles.UnfavoriteArticle(r.Context(), auth.ViewerID(r.Context()), slug)
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}
