package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// NewRouter wires the full API under /api/v1 with the same paths the
// client gateway calls.
func NewRouter(store *Store, secret []byte, logger zerolog.Logger) http.Handler {
	h := NewHandlers(store, secret)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(Auth(secret))

			r.Get("/auth/profile", h.Profile)
			r.Get("/charities", h.ListCharities)
			r.Get("/charities/{id}", h.GetCharity)
			r.Post("/charities/apply", h.ApplyCharity)
			r.Post("/donations", h.CreateDonation)
			r.Get("/donations/history", h.DonationHistory)
			r.Get("/stories", h.ListStories)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole("admin"))
				r.Get("/admin/dashboard", h.AdminDashboard)
			})
		})
	})

	return r
}
