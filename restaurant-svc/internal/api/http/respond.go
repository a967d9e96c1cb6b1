package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/gorilla/mux"
)

const (
	loginPath      = "/accounts/login/"
	staffLoginPath = "/staff/login/"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string, extra map[string]any) {
	body := map[string]any{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError maps service errors onto HTTP responses. Login-required and
// staff-only failures redirect to the matching login page.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, domain.ErrEmptyDraft), errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrUnauthenticated):
		redirectToLogin(w, r, loginPath)
	case errors.Is(err, domain.ErrForbidden):
		redirectToLogin(w, r, staffLoginPath)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		log.Printf("[restaurant-svc] ERROR %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, path string) {
	target := path + "?next=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusFound)
}

// safeNext accepts only local absolute paths as redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return ""
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil && id > 0
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// decodeRequest reads a JSON body into dst, or hands the parsed form to
// fromForm for urlencoded and multipart posts.
func decodeRequest(r *http.Request, dst any, fromForm func(form url.Values)) error {
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return &domain.ValidationError{Field: "body", Message: "Invalid JSON format: " + err.Error()}
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return &domain.ValidationError{Field: "body", Message: "Invalid form data"}
	}
	fromForm(r.Form)
	return nil
}

func formBool(form url.Values, key string) *bool {
	if _, ok := form[key]; !ok {
		return nil
	}
	switch strings.ToLower(form.Get(key)) {
	case "", "0", "false", "off", "no":
		v := false
		return &v
	}
	v := true
	return &v
}
