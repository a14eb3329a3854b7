package alerts

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
		r.Get("/", ListHandler)
		r.Patch("/{alertID}/acknowledge", AcknowledgeHandler)
	})

	return r
}
