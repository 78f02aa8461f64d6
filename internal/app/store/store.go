// internal/app/store/store.go

// Package store defines the entity-store contracts consumed by
// relation.Maintainer. The maintainer takes these interfaces by
// constructor injection so the core logic runs unchanged against the
// Mongo stores in production and the in-memory store in tests.
//
// None of the contracts promise multi-record atomicity. A store that can
// do better exposes the optional Transactor capability, which the
// maintainer uses to wrap multi-record cascades.
package store

import (
	"context"
	"errors"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a referenced record does not resolve.
// Mongo-backed stores translate mongo.ErrNoDocuments to this sentinel so
// callers never depend on driver errors.
var ErrNotFound = errors.New("record not found")

// ClubStore is the persistence contract for clubs.
type ClubStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Club, error)
	List(ctx context.Context) ([]models.Club, error)
	Create(ctx context.Context, c models.Club) (models.Club, error)
	// Save replaces the whole club record by id (upsert).
	Save(ctx context.Context, c models.Club) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EventStore is the persistence contract for events.
type EventStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error)
	// GetManyByIDs returns the events that exist; missing ids are
	// silently omitted.
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, e models.Event) (models.Event, error)
	Save(ctx context.Context, e models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the persistence contract for users. The core never creates
// or deletes users; it only reads them and rewrites their back-reference
// lists.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// GetManyByIDs returns the users that exist; missing ids are
	// silently omitted.
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Save(ctx context.Context, u models.User) error

	// PullAdminOfClub removes clubID from AdminOfClub for every listed
	// user in one bulk operation.
	PullAdminOfClub(ctx context.Context, userIDs []primitive.ObjectID, clubID primitive.ObjectID) error
	// PullParticipatedEvent removes eventID from ParticipatedEvents for
	// every listed user in one bulk operation.
	PullParticipatedEvent(ctx context.Context, userIDs []primitive.ObjectID, eventID primitive.ObjectID) error
}

// CascadeStore persists the cascade journal (begin/step/complete records
// for multi-record deletes).
type CascadeStore interface {
	Insert(ctx context.Context, e models.CascadeEntry) (models.CascadeEntry, error)
	AppendStep(ctx context.Context, id primitive.ObjectID, step models.CascadeStep) error
	MarkCompleted(ctx context.Context, id primitive.ObjectID) error
	// ListIncomplete returns entries with no completion mark, oldest first.
	ListIncomplete(ctx context.Context) ([]models.CascadeEntry, error)
}

// Transactor is an optional capability: stores that support multi-record
// transactions implement it so cascades run atomically. fn must be safe to
// run without a transaction; stores that cannot provide one (standalone
// mongod, the in-memory store) just invoke fn directly.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
