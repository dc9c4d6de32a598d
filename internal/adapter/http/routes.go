package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentora/rentora/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router.
// Single-entity GETs on properties and requests are public; everything
// else requires a bearer credential.
func MountRoutes(r chi.Router, h *Handlers, verifier middleware.TokenVerifier) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Auth (public)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Public single-entity reads
		r.Get("/properties/{id}", h.GetProperty)
		r.Get("/requests/{id}", h.GetRequest)

		// Authenticated API
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))

			r.Get("/auth/me", h.Me)

			// Properties
			r.Post("/properties", h.CreateProperty)
			r.Get("/properties", h.SearchProperties)
			r.Get("/properties/landlord", h.ListLandlordProperties)
			r.Get("/properties/shortlisted", h.ListShortlistedProperties)
			r.Put("/properties/{id}", h.UpdateProperty)
			r.Delete("/properties/{id}", h.DeleteProperty)

			// Shortlist membership
			r.Post("/properties/{id}/shortlist", h.AddShortlist)
			r.Delete("/properties/{id}/shortlist", h.RemoveShortlist)
			r.Get("/properties/{id}/shortlist", h.CheckShortlist)

			// Requests
			r.Post("/requests", h.CreateRequest)
			r.Get("/requests/tenant", h.ListTenantRequests)
			r.Get("/requests/landlord", h.ListLandlordRequests)
			r.Put("/requests/{id}/status", h.UpdateRequestStatus)
		})
	})
}
