package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/corpchat/internal/logging"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API under /api.
//
//	POST /api/auth/register/   public
//	POST /api/auth/login/      public
//	POST /api/auth/logout/     token
//	GET  /api/messages/        token
//	POST /api/messages/        token
//	GET  /api/profile/         token
//	PUT  /api/profile/         token
func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register/", h.Register)
		r.Post("/auth/login/", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Post("/auth/logout/", h.Logout)
			r.Get("/messages/", h.ListMessages)
			r.Post("/messages/", h.CreateMessage)
			r.Get("/profile/", h.GetProfile)
			r.Put("/profile/", h.UpdateProfile)
		})
	})

	return r
}
