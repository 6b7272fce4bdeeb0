package handlers

import (
	"net/http"

	"github.com/isdelr/conduit-be/internal/services"
)

// TagHandler serves the global tag list.
type TagHandler struct {
	tags services.TagServiceProvider
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tags services.TagServiceProvider) *TagHandler {
	return &TagHandler{tags: tags}
}

// List returns every tag name, sorted ascending.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.ListTags(r.Context())
	if err != nil {
		respondServiceError(w, err, "Tags not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"tags": tags})
}
