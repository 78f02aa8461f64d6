// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Reads are public.
	r.Get("/", h.ServeClubList)
	r.Get("/{id}", h.ServeClubView)

	// Club creation is reserved for super-admins.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSuperAdmin)
		pr.Post("/", h.HandleCreateClub)
	})

	// Mutations require a signed-in user; the maintainer checks club
	// admin rights per operation.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/{id}", h.HandleRenameClub)
		pr.Post("/{id}/admins", h.HandleAddAdmins)
		pr.Delete("/{id}/admins/{userID}", h.HandleRemoveAdmin)
		pr.Delete("/{id}", h.HandleDeleteClub)
	})

	return r
}
