package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/services"
)

// ProfileHandler handles public profiles and follow edges.
type ProfileHandler struct {
	profiles services.ProfileServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles services.ProfileServiceProvider) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns a profile relative to the (optional) viewer.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.profiles.GetProfile(r.Context(), username, auth.ViewerID(r.Context()))
	if err != nil {
		respondServiceError(w, err, "Profile not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// Follow creates a follow edge from the actor to the named user.
func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.profiles.FollowUser(r.Context(), auth.ViewerID(r.Context()), username)
	if err != nil {
		respondServiceError(w, err, "Profile not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// Unfollow removes the follow edge if present.
func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.profiles.UnfollowUser(r.Context(), auth.ViewerID(r.Context()), username)
	if err != nil {
		respondServiceError(w, err, "Profile not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}
