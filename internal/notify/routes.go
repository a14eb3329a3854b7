package notify

import (
	"net/http"

	"github.com/SafeCircle/SC-Backend/internal/auth"
	"github.com/SafeCircle/SC-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/tokens", RegisterTokenHandler)
		r.Post("/tokens/deactivate", DeactivateTokenHandler)
		r.Delete("/tokens", DeleteTokenHandler)
	})

	return r
}
