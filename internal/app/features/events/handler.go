// internal/app/features/events/handler.go

// Package events serves the event JSON endpoints: creation under a club,
// listing, wholesale updates with prize winners, registration, and the
// cascading delete.
package events

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/features/shared"
	"github.com/dalemusser/clubhub/internal/app/relation"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the events feature.
type Handler struct {
	Core *relation.Maintainer
	Log  *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(core *relation.Maintainer, logger *zap.Logger) *Handler {
	return &Handler{Core: core, Log: logger}
}

type createEventRequest struct {
	Club        string   `json:"club"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Details     string   `json:"details"`
	Dates       []string `json:"dates"`
}

// HandleCreateEvent handles POST /events. The caller must administer the
// club the event is created under.
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Club == "" {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "club and name are required"})
		return
	}
	clubID, err := shared.PathID(req.Club)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "create event")
	defer cancel()

	ev, err := h.Core.CreateEvent(ctx, shared.Actor(r), relation.EventInput{
		Club:        clubID,
		Name:        req.Name,
		Description: req.Description,
		Details:     req.Details,
		Dates:       req.Dates,
	})
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, ev)
}

// ServeEventList handles GET /events.
func (h *Handler) ServeEventList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "list events")
	defer cancel()

	events, err := h.Core.ListEvents(ctx)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

// ServeEventView handles GET /events/{id}, with the club, participants,
// and prize winners resolved.
func (h *Handler) ServeEventView(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "view event")
	defer cancel()

	view, err := h.Core.GetEvent(ctx, id)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, view)
}

// ServeParticipants handles GET /events/{id}/participants.
func (h *Handler) ServeParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "event participants")
	defer cancel()

	users, err := h.Core.GetEventParticipants(ctx, id)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, users)
}

type prizeRequest struct {
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	WinnerEmail string `json:"winner_email"`
}

type updateEventRequest struct {
	Club        string         `json:"club"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Details     string         `json:"details"`
	Dates       []string       `json:"dates"`
	Prizes      []prizeRequest `json:"prizes"`
}

// HandleUpdateEvent handles POST /events/{id}. The request names the club
// the caller is editing on behalf of, and the fields replace the stored
// ones wholesale.
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Club == "" {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "club and name are required"})
		return
	}
	clubID, err := shared.PathID(req.Club)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	prizes := make([]relation.PrizeInput, 0, len(req.Prizes))
	for _, p := range req.Prizes {
		prizes = append(prizes, relation.PrizeInput{
			Type:        p.Type,
			Amount:      p.Amount,
			WinnerEmail: p.WinnerEmail,
		})
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "update event")
	defer cancel()

	ev, err := h.Core.UpdateEvent(ctx, id, clubID, shared.Actor(r), relation.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Details:     req.Details,
		Dates:       req.Dates,
		Prizes:      prizes,
	})
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ev)
}

// HandleDeleteEvent handles DELETE /events/{id}.
func (h *Handler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "delete event")
	defer cancel()

	if err := h.Core.DeleteEvent(ctx, id, shared.Actor(r)); err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegister handles POST /events/{id}/register: the signed-in user
// registers themselves. Registering twice is harmless.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "register participant")
	defer cancel()

	ev, err := h.Core.RegisterParticipant(ctx, id, shared.Actor(r))
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ev)
}

// HandleUnregister handles DELETE /events/{id}/participants/{userID}.
func (h *Handler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "unregister participant")
	defer cancel()

	ev, err := h.Core.UnregisterParticipant(ctx, id, userID)
	if err != nil {
		shared.WriteError(w, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ev)
}
