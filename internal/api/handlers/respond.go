package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/conduit-be/internal/services"
)

// errorEnvelope is the uniform error body: {"errors":{"body":[...]}}.
type errorEnvelope struct {
	Errors struct {
		Body []string `json:"body"`
	} `json:"errors"`
}

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes the error envelope with the given status and messages.
func respondError(w http.ResponseWriter, status int, messages ...string) {
	var envelope errorEnvelope
	envelope.Errors.Body = messages
	respondJSON(w, status, envelope)
}

// respondServiceError maps domain errors onto status codes. notFoundMsg names
// the missing resource ("Article not found", "Profile not found", ...).
// Anything unrecognized is logged and surfaced as a generic 500 so internals
// never leak.
func respondServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, services.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrSelfFollow):
		respondError(w, http.StatusBadRequest, "You can't follow yourself")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, services.ErrDuplicateAccount):
		respondError(w, http.StatusUnprocessableEntity, "Email or username already in use")
	case errors.Is(err, services.ErrEmailTaken):
		respondError(w, http.StatusUnprocessableEntity, "Email already in use")
	case errors.Is(err, services.ErrUsernameTaken):
		respondError(w, http.StatusUnprocessableEntity, "Username already in use")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondValidationError flattens an ozzo validation error into one message
// per failing field and writes a 422.
func respondValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		messages := make([]string, 0, len(fields))
		for _, field := range fields {
			messages = append(messages, fmt.Sprintf("%s %s", field, fieldErrs[field]))
		}
		respondError(w, http.StatusUnprocessableEntity, messages...)
		return
	}
	respondError(w, http.StatusUnprocessableEntity, err.Error())
}
