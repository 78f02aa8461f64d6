// internal/app/relation/views.go
package relation

import (
	"context"
	"errors"

	"github.com/dalemusser/clubhub/internal/app/store"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ClubView is a club with its references resolved to full records. Admins
// and Events carry only the records that still exist; dangling ids are
// omitted.
type ClubView struct {
	Club   models.Club    `json:"club"`
	Admins []models.User  `json:"admins"`
	Events []models.Event `json:"events"`
}

// PrizeView is a prize with its winner resolved.
type PrizeView struct {
	Type        string       `json:"type"`
	Amount      int          `json:"amount"`
	Winner      *models.User `json:"winner,omitempty"`
	WinnerEmail string       `json:"winner_email,omitempty"`
}

// EventView is an event with its club, participants, and prize winners
// resolved.
type EventView struct {
	Event        models.Event  `json:"event"`
	Club         *models.Club  `json:"club,omitempty"`
	Participants []models.User `json:"participants"`
	Prizes       []PrizeView   `json:"prizes"`
}

// GetClub resolves a club and its referenced records.
func (m *Maintainer) GetClub(ctx context.Context, clubID primitive.ObjectID) (ClubView, error) {
	club, err := m.clubs.GetByID(ctx, clubID)
	if err != nil {
		return ClubView{}, err
	}

	admins, err := m.users.GetManyByIDs(ctx, club.Admins)
	if err != nil {
		return ClubView{}, persistErr("load club admins", err)
	}
	events, err := m.events.GetManyByIDs(ctx, club.Events)
	if err != nil {
		return ClubView{}, persistErr("load club events", err)
	}
	return ClubView{Club: club, Admins: admins, Events: events}, nil
}

// ListClubs returns all clubs, references unresolved.
func (m *Maintainer) ListClubs(ctx context.Context) ([]models.Club, error) {
	return m.clubs.List(ctx)
}

// GetEvent resolves an event, its club, participants, and prize winners.
// An event whose club record has gone missing is still returned, with a
// nil Club; hiding the event would make the dangling reference harder to
// find, not easier.
func (m *Maintainer) GetEvent(ctx context.Context, eventID primitive.ObjectID) (EventView, error) {
	ev, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return EventView{}, err
	}

	view := EventView{Event: ev}

	club, err := m.clubs.GetByID(ctx, ev.Club)
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.log.Warn("event references missing club",
			zap.String("event_id", ev.ID.Hex()),
			zap.String("club_id", ev.Club.Hex()))
	case err != nil:
		return EventView{}, persistErr("load event club", err)
	default:
		view.Club = &club
	}

	view.Participants, err = m.users.GetManyByIDs(ctx, ev.Participants)
	if err != nil {
		return EventView{}, persistErr("load participants", err)
	}

	winnerIDs := make([]primitive.ObjectID, 0, len(ev.Prizes))
	for _, p := range ev.Prizes {
		if p.Winner != nil {
			winnerIDs = append(winnerIDs, *p.Winner)
		}
	}
	winners := make(map[primitive.ObjectID]models.User, len(winnerIDs))
	if len(winnerIDs) > 0 {
		us, err := m.users.GetManyByIDs(ctx, winnerIDs)
		if err != nil {
			return EventView{}, persistErr("load prize winners", err)
		}
		for _, u := range us {
			winners[u.ID] = u
		}
	}

	view.Prizes = make([]PrizeView, 0, len(ev.Prizes))
	for _, p := range ev.Prizes {
		pv := PrizeView{Type: p.Type, Amount: p.Amount}
		if p.Winner != nil {
			if u, ok := winners[*p.Winner]; ok {
				w := u
				pv.Winner = &w
				pv.WinnerEmail = u.Email
			}
		}
		view.Prizes = append(view.Prizes, pv)
	}
	return view, nil
}

// ListEvents returns all events, references unresolved.
func (m *Maintainer) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.events.List(ctx)
}

// GetEventParticipants returns the participant records for an event.
func (m *Maintainer) GetEventParticipants(ctx context.Context, eventID primitive.ObjectID) ([]models.User, error) {
	ev, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	us, err := m.users.GetManyByIDs(ctx, ev.Participants)
	if err != nil {
		return nil, persistErr("load participants", err)
	}
	return us, nil
}
