package handlers

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/services"
	"github.com/isdelr/conduit-be/internal/views"
)

// UserHandler handles registration, login, and the current-user endpoints.
type UserHandler struct {
	users services.UserServiceProvider
	codec *auth.TokenCodec
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, codec *auth.TokenCodec) *UserHandler {
	return &UserHandler{users: users, codec: codec}
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload.
func (p registerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(6, 100)),
	)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

type updateUserPayload struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// Validate checks the profile-update payload. All fields are optional; rules
// only apply to the ones present.
func (p updateUserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, is.Email),
		validation.Field(&p.Username, validation.Length(3, 100)),
		validation.Field(&p.Password, validation.Length(6, 100)),
	)
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User registerPayload `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.User.Validate(); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.User.Username, req.User.Email, req.User.Password)
	if err != nil {
		respondServiceError(w, err, "User not found")
		return
	}

	token, err := h.codec.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"user": views.NewUser(user, token)})
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User loginPayload `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.User.Validate(); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.User.Email, req.User.Password)
	if err != nil {
		log.Warn().Str("email", req.User.Email).Msg("Failed authentication attempt")
		respondServiceError(w, err, "User not found")
		return
	}

	token, err := h.codec.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": views.NewUser(user, token)})
}

// GetCurrent returns the authenticated user, echoing the presented token.
func (h *UserHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user": views.NewUser(user, auth.CurrentToken(r.Context())),
	})
}

// Update applies partial changes to the authenticated user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		User updateUserPayload `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.User.Validate(); err != nil {
		respondValidationError(w, err)
		return
	}

	updated, err := h.users.UpdateUser(r.Context(), user.ID, services.UserChanges{
		Email:    req.User.Email,
		Username: req.User.Username,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
		Password: req.User.Password,
	})
	if err != nil {
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user": views.NewUser(updated, auth.CurrentToken(r.Context())),
	})
}
