// internal/app/features/clubs/handler.go

// Package clubs serves the club JSON endpoints: creation, listing,
// renaming, admin grants and revocations, and the cascading delete. All
// reference bookkeeping is delegated to the relationship maintainer; the
// handlers only decode requests and map errors to statuses.
package clubs

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/features/shared"
	"github.com/dalemusser/clubhub/internal/app/relation"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the clubs feature.
type Handler struct {
	Core *relation.Maintainer
	Log  *zap.Logger
}

// NewHandler constructs a clubs Handler. It is typically called from the
// bootstrap BuildHandler function.
func NewHandler(core *relation.Maintainer, logger *zap.Logger) *Handler {
	return &Handler{Core: core, Log: logger}
}

type createClubRequest struct {
	Name        string   `json:"name"`
	AdminEmails []string `json:"admin_emails"`
}

// HandleCreateClub handles POST /clubs. Super-admin only (enforced by the
// route middleware); the admin emails become the club's initial admins.
func (h *Handler) HandleCreateClub(w http.ResponseWriter, r *http.Request) {
	var req createClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "create club")
	defer cancel()

	club, err := h.Core.CreateClub(ctx, req.Name, req.AdminEmails)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, club)
}

// ServeClubList handles GET /clubs.
func (h *Handler) ServeClubList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "list clubs")
	defer cancel()

	clubs, err := h.Core.ListClubs(ctx)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, clubs)
}

// ServeClubView handles GET /clubs/{id}, with admin and event references
// resolved.
func (h *Handler) ServeClubView(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "view club")
	defer cancel()

	view, err := h.Core.GetClub(ctx, id)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, view)
}

type renameClubRequest struct {
	Name string `json:"name"`
}

// HandleRenameClub handles POST /clubs/{id}.
func (h *Handler) HandleRenameClub(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	var req renameClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "rename club")
	defer cancel()

	club, err := h.Core.RenameClub(ctx, id, shared.Actor(r), req.Name)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, club)
}

type addAdminsRequest struct {
	Emails []string `json:"emails"`
}

// HandleAddAdmins handles POST /clubs/{id}/admins.
func (h *Handler) HandleAddAdmins(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	var req addAdminsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Emails) == 0 {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "emails is required"})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "add club admins")
	defer cancel()

	club, err := h.Core.AddClubAdmins(ctx, id, shared.Actor(r), req.Emails)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, club)
}

// HandleRemoveAdmin handles DELETE /clubs/{id}/admins/{userID}.
func (h *Handler) HandleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	userID, err := shared.PathID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "remove club admin")
	defer cancel()

	club, err := h.Core.RemoveClubAdmin(ctx, id, shared.Actor(r), userID)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, club)
}

// HandleDeleteClub handles DELETE /clubs/{id}: the club, its events, and
// every back-reference go away together.
func (h *Handler) HandleDeleteClub(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "delete club")
	defer cancel()

	if err := h.Core.DeleteClub(ctx, id, shared.Actor(r)); err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
