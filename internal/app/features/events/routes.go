// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Reads are public.
	r.Get("/", h.ServeEventList)
	r.Get("/{id}", h.ServeEventView)
	r.Get("/{id}/participants", h.ServeParticipants)

	// Unregistration is deliberately open: callers may remove a
	// participant without signing in, matching the self-service flow.
	r.Delete("/{id}/participants/{userID}", h.HandleUnregister)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/", h.HandleCreateEvent)
		pr.Post("/{id}", h.HandleUpdateEvent)
		pr.Delete("/{id}", h.HandleDeleteEvent)
		pr.Post("/{id}/register", h.HandleRegister)
	})

	return r
}
