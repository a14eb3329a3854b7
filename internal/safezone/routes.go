package safezone

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
		r.Post("/", UpsertHandler)
		r.Get("/", GetHandler)
		r.Patch("/", PatchHandler)
		r.Post("/toggle", ToggleHandler)
		r.Delete("/", DeleteHandler)
	})

	return r
}
