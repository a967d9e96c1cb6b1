package httpapi

import (
	"log"
	"net/http"
	"time"

	"restaurant-hub/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter serves the handler behind the session middleware. Credentialed
// cross-origin requests are accepted only from allowedOrigins; without any,
// CORS falls back to the permissive defaults and cookies stay same-origin.
func NewRouter(handler *Handler, sessions service.SessionStore, sessionTTL time.Duration, allowedOrigins ...string) http.Handler {
	handler.SessionTTL = sessionTTL

	r := mux.NewRouter()
	r.Use(SessionMiddleware(sessions, handler.Auth, sessionTTL))
	handler.RegisterRoutes(r)

	if len(allowedOrigins) == 0 {
		return cors.Default().Handler(r)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowCredentials: true,
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Restaurant Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
