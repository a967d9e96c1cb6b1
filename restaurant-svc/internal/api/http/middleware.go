package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

const SessionCookieName = "sessionid"

type contextKey int

const (
	sessionContextKey contextKey = iota
	userContextKey
)

// SessionMiddleware attaches the caller's session and user to the request
// context, issuing a fresh session cookie when the browser has none.
func SessionMiddleware(sessions service.SessionStore, auth service.AuthServiceInterface, ttl time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *domain.Session
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				loaded, err := sessions.Load(ctx, cookie.Value)
				switch {
				case err == nil:
					sess = loaded
				case !errors.Is(err, domain.ErrNotFound):
					log.Printf("[restaurant-svc] failed to load session: %v", err)
				}
			}
			if sess == nil {
				sess = sessions.New()
				setSessionCookie(w, sess.ID, ttl)
			}

			user, err := auth.CurrentUser(ctx, sess)
			if err != nil {
				log.Printf("[restaurant-svc] failed to load user for session %s: %v", sess.ID, err)
			}

			ctx = context.WithValue(ctx, sessionContextKey, sess)
			ctx = context.WithValue(ctx, userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func sessionFrom(r *http.Request) *domain.Session {
	if sess, ok := r.Context().Value(sessionContextKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	return &domain.Session{}
}

func userFrom(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}
