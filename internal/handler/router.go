package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/gov-portal/internal/middleware"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Sessions *scs.SessionManager
	Health   *HealthHandler
	Portal   *PortalHandler
	CSRF     middleware.CSRFConfig
	IsDev    bool
}

// NewRouter builds the HTTP routes of the portal server.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))

	r.Get("/health", cfg.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.Sessions.LoadAndSave)
		r.Use(middleware.CSRF(cfg.CSRF))

		r.Get("/view", cfg.Portal.View)
		r.Get("/commands", cfg.Portal.Commands)
		r.Post("/commands", cfg.Portal.Command)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found")
	})

	return r
}
