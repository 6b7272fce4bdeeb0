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

// CommentHandler handles article comments.
type CommentHandler struct {
	comments services.CommentServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments services.CommentServiceProvider) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentPayload struct {
	Body string `json:"body"`
}

// Validate checks the comment payload.
func (p commentPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Body, validation.Required),
	)
}

// List returns an article's comments, oldest first.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	comments, err := h.comments.ListComments(r.Context(), slug, auth.ViewerID(r.Context()))
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// Create adds a comment to an article.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req struct {
		Comment commentPayload `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Comment.Validate(); err != nil {
		respondValidationError(w, err)
		return
	}

	comment, err := h.comments.AddComment(r.Context(), auth.ViewerID(r.Context()), slug, req.Comment.Body)
	if err != nil {
		respondServiceError(w, err, "Article not found")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}

// Delete removes a comment authored by the actor.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Comment not found")
		return
	}

	if err := h.comments.DeleteComment(r.Context(), auth.ViewerID(r.Context()), slug, uint(id)); err != nil {
		respondServiceError(w, err, "Comment not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
