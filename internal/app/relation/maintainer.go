// internal/app/relation/maintainer.go

// Package relation owns the denormalized references between clubs, events,
// and users: club admin lists, event participant lists, and the matching
// back-reference lists on users. Every mutation that touches more than one
// record goes through Maintainer so both sides of each reference are
// written in a fixed order.
package relation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/store"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/journal"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Maintainer applies club/event/user mutations and keeps the forward and
// back references consistent. It is built over the store contracts, so the
// same code runs against Mongo in production and the in-memory store in
// tests.
type Maintainer struct {
	clubs   store.ClubStore
	events  store.EventStore
	users   store.UserStore
	journal *journal.Recorder
	txr     store.Transactor
	log     *zap.Logger
}

// New wires a Maintainer. journal and txr may be nil: without a journal
// cascades run unrecorded, without a Transactor multi-record cascades run
// as individual writes.
func New(clubs store.ClubStore, events store.EventStore, users store.UserStore, jr *journal.Recorder, txr store.Transactor, log *zap.Logger) *Maintainer {
	return &Maintainer{clubs: clubs, events: events, users: users, journal: jr, txr: txr, log: log}
}

func (m *Maintainer) inTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.txr == nil {
		return fn(ctx)
	}
	return m.txr.WithTransaction(ctx, fn)
}

// gate returns ErrNotAuthenticated or ErrForbidden unless the actor may
// administer the club. It runs before any write so a rejected caller never
// sees a partially applied mutation.
func (m *Maintainer) gate(club models.Club, actor *models.User) error {
	ok, err := clubpolicy.IsClubAdmin(club, actor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// resolveAdmins maps emails to user records. Every email must resolve;
// an unknown one fails the whole request before any write. Duplicates
// (two spellings of the same address) collapse to one user.
func (m *Maintainer) resolveAdmins(ctx context.Context, emails []string) ([]models.User, error) {
	seen := make(map[primitive.ObjectID]bool, len(emails))
	var out []models.User
	for _, raw := range emails {
		u, err := m.users.GetByEmail(ctx, raw)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("admin email %q: %w", raw, store.ErrNotFound)
		}
		if err != nil {
			return nil, persistErr("resolve admin email", err)
		}
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		out = append(out, u)
	}
	return out, nil
}

// CreateClub creates a club and grants admin rights to the users behind
// adminEmails. The club record is written first, then each admin's
// back-reference; a failure partway leaves the earlier writes in place.
func (m *Maintainer) CreateClub(ctx context.Context, name string, adminEmails []string) (models.Club, error) {
	admins, err := m.resolveAdmins(ctx, adminEmails)
	if err != nil {
		return models.Club{}, err
	}

	adminIDs := make([]primitive.ObjectID, 0, len(admins))
	for _, u := range admins {
		adminIDs = append(adminIDs, u.ID)
	}

	club, err := m.clubs.Create(ctx, models.Club{
		Name:   normalize.Name(name),
		Admins: adminIDs,
	})
	if err != nil {
		return models.Club{}, err
	}

	for _, u := range admins {
		if hasID(u.AdminOfClub, club.ID) {
			continue
		}
		u.AdminOfClub = append(u.AdminOfClub, club.ID)
		u.UpdatedAt = time.Now().UTC()
		if err := m.users.Save(ctx, u); err != nil {
			return models.Club{}, persistErr("save club admin", err)
		}
	}

	m.log.Info("club created",
		zap.String("club_id", club.ID.Hex()),
		zap.String("name", club.Name),
		zap.Int("admins", len(adminIDs)))
	return club, nil
}

// AddClubAdmins grants admin rights on the club to the users behind
// emails. Each user's back-reference is saved as it is granted; the club
// record is saved once at the end.
func (m *Maintainer) AddClubAdmins(ctx context.Context, clubID primitive.ObjectID, actor *models.User, emails []string) (models.Club, error) {
	club, err := m.clubs.GetByID(ctx, clubID)
	if err != nil {
		return models.Club{}, err
	}
	if err := m.gate(club, actor); err != nil {
		return models.Club{}, err
	}

	admins, err := m.resolveAdmins(ctx, emails)
	if err != nil {
		return models.Club{}, err
	}

	changed := false
	for _, u := range admins {
		if !club.HasAdmin(u.ID) {
			club.Admins = append(club.Admins, u.ID)
			changed = true
		}
		if hasID(u.AdminOfClub, club.ID) {
			continue
		}
		u.AdminOfClub = append(u.AdminOfClub, club.ID)
		u.UpdatedAt = time.Now().UTC()
		if err := m.users.Save(ctx, u); err != nil {
			return models.Club{}, persistErr("save club admin", err)
		}
	}

	if changed {
		club.UpdatedAt = time.Now().UTC()
		if err := m.clubs.Save(ctx, club); err != nil {
			return models.Club{}, persistErr("save club", err)
		}
	}
	return club, nil
}

// RemoveClubAdmin revokes a user's admin rights on the club. The club is
// saved first, then the user's back-reference; a user record that no
// longer exists is tolerated so stale admin entries can be cleaned out.
func (m *Maintainer) RemoveClubAdmin(ctx context.Context, clubID primitive.ObjectID, actor *models.User, userID primitive.ObjectID) (models.Club, error) {
	club, err := m.clubs.GetByID(ctx, clubID)
	if err != nil {
		return models.Club{}, err
	}
	if err := m.gate(club, actor); err != nil {
		return models.Club{}, err
	}

	club.Admins = removeID(club.Admins, userID)
	club.UpdatedAt = time.Now().UTC()
	if err := m.clubs.Save(ctx, club); err != nil {
		return models.Club{}, persistErr("save club", err)
	}

	u, err := m.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		m.log.Warn("removed admin user no longer exists",
			zap.String("club_id", clubID.Hex()),
			zap.String("user_id", userID.Hex()))
		return club, nil
	}
	if err != nil {
		return models.Club{}, persistErr("load removed admin", err)
	}
	u.AdminOfClub = removeID(u.AdminOfClub, clubID)
	u.UpdatedAt = time.Now().UTC()
	if err := m.users.Save(ctx, u); err != nil {
		return models.Club{}, persistErr("save removed admin", err)
	}
	return club, nil
}

// RenameClub changes the club's display name.
func (m *Maintainer) RenameClub(ctx context.Context, clubID primitive.ObjectID, actor *models.User, name string) (models.Club, error) {
	club, err := m.clubs.GetByID(ctx, clubID)
	if err != nil {
		return models.Club{}, err
	}
	if err := m.gate(club, actor); err != nil {
		return models.Club{}, err
	}

	club.Name = normalize.Name(name)
	club.NameCI = text.Fold(club.Name)
	club.UpdatedAt = time.Now().UTC()
	if err := m.clubs.Save(ctx, club); err != nil {
		return models.Club{}, persistErr("save club", err)
	}
	return club, nil
}

// DeleteClub removes the club, every event it owns, and every
// back-reference pointing at them. The cascade is journaled step by step;
// when the store supports transactions the writes commit atomically,
// otherwise the journal entry is what an operator uses to finish an
// interrupted cascade by hand.
func (m *Maintainer) DeleteClub(ctx context.Context, clubID primitive.ObjectID, actor *models.User) error {
	club, err := m.clubs.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if err := m.gate(club, actor); err != nil {
		return err
	}

	entry := m.journal.Begin(ctx, journal.OpDeleteClub, club.ID)

	err = m.inTxn(ctx, func(ctx context.Context) error {
		if err := m.users.PullAdminOfClub(ctx, club.Admins, club.ID); err != nil {
			return persistErr("clear admin back-references", err)
		}
		entry.Step(ctx, "admins_cleared", club.ID)

		for _, evID := range club.Events {
			ev, err := m.events.GetByID(ctx, evID)
			if errors.Is(err, store.ErrNotFound) {
				m.log.Warn("club references missing event, skipping",
					zap.String("club_id", club.ID.Hex()),
					zap.String("event_id", evID.Hex()))
				continue
			}
			if err != nil {
				return persistErr("load club event", err)
			}
			if err := m.users.PullParticipatedEvent(ctx, ev.Participants, ev.ID); err != nil {
				return persistErr("clear participant back-references", err)
			}
			entry.Step(ctx, "event_participants_cleared", ev.ID)
			if err := m.events.Delete(ctx, ev.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return persistErr("delete event", err)
			}
			entry.Step(ctx, "event_deleted", ev.ID)
		}

		if err := m.clubs.Delete(ctx, club.ID); err != nil {
			return persistErr("delete club", err)
		}
		entry.Step(ctx, "club_deleted", club.ID)
		return nil
	})
	if err != nil {
		return err
	}

	entry.Complete(ctx)
	m.log.Info("club deleted",
		zap.String("club_id", club.ID.Hex()),
		zap.Int("events", len(club.Events)))
	return nil
}

// EventInput carries the caller-supplied fields for a new event.
type EventInput struct {
	Club        primitive.ObjectID
	Name        string
	Description string
	Details     string
	Dates       []string
}

// CreateEvent creates an event under the given club and links it into the
// club's event list. Description and details are sanitized before they are
// stored.
func (m *Maintainer) CreateEvent(ctx context.Context, actor *models.User, in EventInput) (models.Event, error) {
	club, err := m.clubs.GetByID(ctx, in.Club)
	if err != nil {
		return models.Event{}, err
	}
	if err := m.gate(club, actor); err != nil {
		return models.Event{}, err
	}

	ev, err := m.events.Create(ctx, models.Event{
		Club:        club.ID,
		Name:        normalize.Name(in.Name),
		Description: htmlsanitize.Sanitize(in.Description),
		Details:     htmlsanitize.Sanitize(in.Details),
		Dates:       in.Dates,
	})
	if err != nil {
		return models.Event{}, persistErr("create event", err)
	}

	club.Events = append(club.Events, ev.ID)
	club.UpdatedAt = time.Now().UTC()
	if err := m.clubs.Save(ctx, club); err != nil {
		return models.Event{}, persistErr("save club", err)
	}

	m.log.Info("event created",
		zap.String("event_id", ev.ID.Hex()),
		zap.String("club_id", club.ID.Hex()),
		zap.String("name", ev.Name))
	return ev, nil
}

// PrizeInput is one prize in an event update. WinnerEmail, when set, names
// the winning user; an email that does not resolve leaves the winner
// unassigned rather than failing the update.
type PrizeInput struct {
	Type        string
	Amount      int
	WinnerEmail string
}

// EventUpdate carries the replacement fields for UpdateEvent.
type EventUpdate struct {
	Name        string
	Description string
	Details     string
	Dates       []string
	Prizes      []PrizeInput
}

// UpdateEvent replaces the event's editable fields wholesale. The
// authorization check runs against the club id supplied by the caller,
// not the one stored on the event.
func (m *Maintainer) UpdateEvent(ctx context.Context, eventID, clubID primitive.ObjectID, actor *models.User, in EventUpdate) (models.Event, error) {
	club, err := m.clubs.GetByID(ctx, clubID)
	if err != nil {
		return models.Event{}, err
	}
	if err := m.gate(club, actor); err != nil {
		return models.Event{}, err
	}

	ev, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return models.Event{}, err
	}

	prizes := make([]models.Prize, 0, len(in.Prizes))
	for _, p := range in.Prizes {
		prize := models.Prize{Type: p.Type, Amount: p.Amount}
		if p.WinnerEmail != "" {
			u, err := m.users.GetByEmail(ctx, p.WinnerEmail)
			switch {
			case errors.Is(err, store.ErrNotFound):
				m.log.Warn("prize winner email does not match a user",
					zap.String("event_id", ev.ID.Hex()),
					zap.String("email", p.WinnerEmail))
			case err != nil:
				return models.Event{}, persistErr("resolve prize winner", err)
			default:
				prize.Winner = &u.ID
			}
		}
		prizes = append(prizes, prize)
	}

	ev.Name = normalize.Name(in.Name)
	ev.Description = htmlsanitize.Sanitize(in.Description)
	ev.Details = htmlsanitize.Sanitize(in.Details)
	ev.Dates = in.Dates
	ev.Prizes = prizes
	ev.UpdatedAt = time.Now().UTC()
	if err := m.events.Save(ctx, ev); err != nil {
		return models.Event{}, persistErr("save event", err)
	}
	return ev, nil
}

// DeleteEvent removes the event, unlinks it from its club, and clears the
// back-reference on every participant. Journaled like DeleteClub.
func (m *Maintainer) DeleteEvent(ctx context.Context, eventID primitive.ObjectID, actor *models.User) error {
	ev, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	club, err := m.clubs.GetByID(ctx, ev.Club)
	if err != nil {
		return err
	}
	if err := m.gate(club, actor); err != nil {
		return err
	}

	entry := m.journal.Begin(ctx, journal.OpDeleteEvent, ev.ID)

	err = m.inTxn(ctx, func(ctx context.Context) error {
		club.Events = removeID(club.Events, ev.ID)
		club.UpdatedAt = time.Now().UTC()
		if err := m.clubs.Save(ctx, club); err != nil {
			return persistErr("save club", err)
		}
		entry.Step(ctx, "club_ref_removed", club.ID)

		participants, err := m.users.GetManyByIDs(ctx, ev.Participants)
		if err != nil {
			return persistErr("load participants", err)
		}
		for _, u := range participants {
			u.ParticipatedEvents = removeID(u.ParticipatedEvents, ev.ID)
			u.UpdatedAt = time.Now().UTC()
			if err := m.users.Save(ctx, u); err != nil {
				return persistErr("save participant", err)
			}
		}
		entry.Step(ctx, "participants_cleared", ev.ID)

		if err := m.events.Delete(ctx, ev.ID); err != nil {
			return persistErr("delete event", err)
		}
		entry.Step(ctx, "event_deleted", ev.ID)
		return nil
	})
	if err != nil {
		return err
	}

	entry.Complete(ctx)
	m.log.Info("event deleted",
		zap.String("event_id", ev.ID.Hex()),
		zap.String("club_id", club.ID.Hex()),
		zap.Int("participants", len(ev.Participants)))
	return nil
}

// RegisterParticipant adds the acting user to the event's participant
// list and the event to the user's back-reference list. Registering twice
// is a no-op. The event is saved before the user, so an interrupted
// registration leaves the forward reference in place.
func (m *Maintainer) RegisterParticipant(ctx context.Context, eventID primitive.ObjectID, actor *models.User) (models.Event, error) {
	if actor == nil {
		return models.Event{}, ErrNotAuthenticated
	}
	ev, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return models.Event{}, err
	}
	if ev.HasParticipant(actor.ID) {
		return ev, nil
	}

	u, err := m.users.GetByID(ctx, actor.ID)
	if err != nil {
		return models.Event{}, err
	}

	ev.Participants = append(ev.Participants, u.ID)
	ev.UpdatedAt = time.Now().UTC()
	if err := m.events.Save(ctx, ev); err != nil {
		return models.Event{}, persistErr("save event", err)
	}

	if !hasID(u.ParticipatedEvents, ev.ID) {
		u.ParticipatedEvents = append(u.ParticipatedEvents, ev.ID)
		u.UpdatedAt = time.Now().UTC()
		if err := m.users.Save(ctx, u); err != nil {
			return models.Event{}, persistErr("save participant", err)
		}
	}
	return ev, nil
}

// UnregisterParticipant removes a participant from the event. There is no
// authorization gate; any caller who can name the event and participant
// may sever the link. A user who was never registered is a no-op, so the
// operation can also repair a one-sided reference left by an interrupted
// registration. Only a missing event or user record is an error.
func (m *Maintainer) UnregisterParticipant(ctx context.Context, eventID, participantID primitive.ObjectID) (models.Event, error) {
	ev, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return models.Event{}, err
	}
	u, err := m.users.GetByID(ctx, participantID)
	if err != nil {
		return models.Event{}, err
	}

	ev.Participants = removeID(ev.Participants, participantID)
	ev.UpdatedAt = time.Now().UTC()
	if err := m.events.Save(ctx, ev); err != nil {
		return models.Event{}, persistErr("save event", err)
	}

	u.ParticipatedEvents = removeID(u.ParticipatedEvents, ev.ID)
	u.UpdatedAt = time.Now().UTC()
	if err := m.users.Save(ctx, u); err != nil {
		return models.Event{}, persistErr("save participant", err)
	}
	return ev, nil
}

func hasID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
