// Package testutil provides fixtures and HTTP helpers for handler and
// store tests. Fixtures run against the in-memory store, so tests need no
// database.
package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/relation"
	"github.com/dalemusser/clubhub/internal/app/store/memory"
	"github.com/dalemusser/clubhub/internal/app/system/journal"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// NewCore builds a relationship maintainer over a fresh in-memory store.
func NewCore(t *testing.T) (*relation.Maintainer, *memory.DB) {
	t.Helper()
	db := memory.NewDB()
	jr := journal.New(db.Cascades(), zap.NewNop())
	return relation.New(db.Clubs(), db.Events(), db.Users(), jr, nil, zap.NewNop()), db
}

// CreateUser inserts a user record.
func CreateUser(t *testing.T, db *memory.DB, name, email string) models.User {
	t.Helper()
	u, err := db.Users().Create(context.Background(), models.User{
		FullName: name,
		Email:    email,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// CreateSuperAdmin inserts a user with the super-admin flag set.
func CreateSuperAdmin(t *testing.T, db *memory.DB, name, email string) models.User {
	t.Helper()
	u, err := db.Users().Create(context.Background(), models.User{
		FullName:   name,
		Email:      email,
		SuperAdmin: true,
	})
	if err != nil {
		t.Fatalf("create super admin %s: %v", email, err)
	}
	return u
}

// CreateClub creates a club through the maintainer so both sides of the
// admin references are wired.
func CreateClub(t *testing.T, core *relation.Maintainer, name string, adminEmails ...string) models.Club {
	t.Helper()
	club, err := core.CreateClub(context.Background(), name, adminEmails)
	if err != nil {
		t.Fatalf("create club %s: %v", name, err)
	}
	return club
}

// CreateEvent creates an event through the maintainer, acting as the
// given club admin.
func CreateEvent(t *testing.T, core *relation.Maintainer, actor models.User, club models.Club, name string) models.Event {
	t.Helper()
	ev, err := core.CreateEvent(context.Background(), &actor, relation.EventInput{
		Club: club.ID,
		Name: name,
	})
	if err != nil {
		t.Fatalf("create event %s: %v", name, err)
	}
	return ev
}
