package relation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/relation"
	"github.com/dalemusser/clubhub/internal/app/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetClub_ResolvesReferences(t *testing.T) {
	m, db := newMaintainer(t)
	ctx := context.Background()

	alice := mkUser(t, db, "Alice", "alice@example.com", false)
	club, _ := m.CreateClub(ctx, "Chess Club", []string{alice.Email})
	ev, _ := m.CreateEvent(ctx, &alice, relation.EventInput{Club: club.ID, Name: "Spring Open"})

	view, err := m.GetClub(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetClub: %v", err)
	}
	if len(view.Admins) != 1 || view.Admins[0].ID != alice.ID {
		t.Errorf("admins = %+v, want alice", view.Admins)
	}
	if len(view.Events) != 1 || view.Events[0].ID != ev.ID {
		t.Errorf("events = %+v, want one event", view.Events)
	}
}

func TestGetClub_OmitsDanglingReferences(t *testing.T) {
	m, db := newMaintainer(t)
	ctx := context.Background()

	alice := mkUser(t, db, "Alice", "alice@example.com", false)
	club, _ := m.CreateClub(ctx, "Chess Club", []string{alice.Email})

	club, _ = db.Clubs().GetByID(ctx, club.ID)
	club.Admins = append(club.Admins, primitive.NewObjectID())
	club.Events = append(club.Events, primitive.NewObjectID())
	if err := db.Clubs().Save(ctx, club); err != nil {
		t.Fatalf("seed dangling refs: %v", err)
	}

	view, err := m.GetClub(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetClub: %v", err)
	}
	if len(view.Admins) != 1 {
		t.Errorf("admins = %d, want 1 (dangling id omitted)", len(view.Admins))
	}
	if len(view.Events) != 0 {
		t.Errorf("events = %d, want 0 (dangling id omitted)", len(view.Events))
	}
}

func TestGetEvent_ResolvesWinners(t *testing.T) {
	m, db := newMaintainer(t)
	ctx := context.Background()

	alice := mkUser(t, db, "Alice", "alice@example.com", false)
	carol := mkUser(t, db, "Carol", "carol@example.com", false)
	club, _ := m.CreateClub(ctx, "Chess Club", []string{alice.Email})
	ev, _ := m.CreateEvent(ctx, &alice, relation.EventInput{Club: club.ID, Name: "Spring Open"})
	m.RegisterParticipant(ctx, ev.ID, &carol)
	ev, err := m.UpdateEvent(ctx, ev.ID, club.ID, &alice, relation.EventUpdate{
		Name: "Spring Open",
		Prizes: []relation.PrizeInput{
			{Type: "cash", Amount: 100, WinnerEmail: carol.Email},
			{Type: "medal", Amount: 3},
		},
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	view, err := m.GetEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if view.Club == nil || view.Club.ID != club.ID {
		t.Errorf("club not resolved")
	}
	if len(view.Participants) != 1 || view.Participants[0].ID != carol.ID {
		t.Errorf("participants = %+v, want carol", view.Participants)
	}
	if len(view.Prizes) != 2 {
		t.Fatalf("prizes = %d, want 2", len(view.Prizes))
	}
	if view.Prizes[0].Winner == nil || view.Prizes[0].Winner.ID != carol.ID {
		t.Errorf("prize 0 winner not resolved to carol")
	}
	if view.Prizes[0].WinnerEmail != carol.Email {
		t.Errorf("prize 0 winner email = %q", view.Prizes[0].WinnerEmail)
	}
	if view.Prizes[1].Winner != nil {
		t.Errorf("prize 1 winner = %+v, want nil", view.Prizes[1].Winner)
	}
}

func TestGetEvent_MissingClubTolerated(t *testing.T) {
	m, db := newMaintainer(t)
	ctx := context.Background()

	alice := mkUser(t, db, "Alice", "alice@example.com", false)
	club, _ := m.CreateClub(ctx, "Chess Club", []string{alice.Email})
	ev, _ := m.CreateEvent(ctx, &alice, relation.EventInput{Club: club.ID, Name: "Spring Open"})

	// Simulate an interrupted cascade that removed the club but not the event.
	if err := db.Clubs().Delete(ctx, club.ID); err != nil {
		t.Fatalf("delete club: %v", err)
	}

	view, err := m.GetEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if view.Club != nil {
		t.Errorf("club = %+v, want nil for missing club", view.Club)
	}
	if view.Event.ID != ev.ID {
		t.Errorf("event not returned")
	}
}

func TestGetEventParticipants(t *testing.T) {
	m, db := newMaintainer(t)
	ctx := context.Background()

	alice := mkUser(t, db, "Alice", "alice@example.com", false)
	carol := mkUser(t, db, "Carol", "carol@example.com", false)
	club, _ := m.CreateClub(ctx, "Chess Club", []string{alice.Email})
	ev, _ := m.CreateEvent(ctx, &alice, relation.EventInput{Club: club.ID, Name: "Spring Open"})
	m.RegisterParticipant(ctx, ev.ID, &carol)

	got, err := m.GetEventParticipants(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetEventParticipants: %v", err)
	}
	if len(got) != 1 || got[0].ID != carol.ID {
		t.Errorf("participants = %+v, want carol", got)
	}

	if _, err := m.GetEventParticipants(ctx, primitive.NewObjectID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown event: err = %v, want ErrNotFound", err)
	}
}
