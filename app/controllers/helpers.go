package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"driftwood/app/models"
	"driftwood/app/ratelimit"
	"driftwood/app/repositories"
	"driftwood/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// sessionCookie identifies anonymous submitters across requests so rate
// limiting and like tracking have a stable key.
const sessionCookie = "driftwood_sid"

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// errStatus maps service errors onto HTTP status codes. Validation
// problems are the client's fault; anything unrecognized is ours.
func errStatus(err error) int {
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalid), errors.Is(err, ratelimit.ErrEmptyKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendServiceError(w http.ResponseWriter, err error) {
	sendError(w, err.Error(), errStatus(err))
}

// submitterID resolves the caller's identity: an explicit submitter field
// wins, otherwise the session cookie, otherwise a fresh session token is
// minted and set so repeat requests share one rate limit bucket.
func submitterID(w http.ResponseWriter, r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	token := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// isForm reports whether the request body is a urlencoded form rather
// than JSON.
func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// decodeBody decodes a JSON body or, for form posts, leaves decoding to
// the caller's form handling. Returns true when JSON was consumed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
