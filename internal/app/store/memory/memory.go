// internal/app/store/memory/memory.go

// Package memory provides an in-memory implementation of the store
// contracts. It backs the relationship-maintainer unit tests (no Mongo
// required) and is deliberately unsophisticated: a mutex and maps, with
// records copied on the way in and out so callers never share slices with
// the store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DB holds all in-memory collections. The per-entity stores returned by
// Clubs/Events/Users/Cascades share its lock, mirroring how the Mongo
// stores share one database.
type DB struct {
	mu       sync.Mutex
	clubs    map[primitive.ObjectID]models.Club
	events   map[primitive.ObjectID]models.Event
	users    map[primitive.ObjectID]models.User
	cascades map[primitive.ObjectID]models.CascadeEntry
}

func NewDB() *DB {
	return &DB{
		clubs:    map[primitive.ObjectID]models.Club{},
		events:   map[primitive.ObjectID]models.Event{},
		users:    map[primitive.ObjectID]models.User{},
		cascades: map[primitive.ObjectID]models.CascadeEntry{},
	}
}

func (db *DB) Clubs() *ClubStore       { return &ClubStore{db: db} }
func (db *DB) Events() *EventStore     { return &EventStore{db: db} }
func (db *DB) Users() *UserStore       { return &UserStore{db: db} }
func (db *DB) Cascades() *CascadeStore { return &CascadeStore{db: db} }

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func copyClub(c models.Club) models.Club {
	c.Admins = copyIDs(c.Admins)
	c.Events = copyIDs(c.Events)
	return c
}

func copyEvent(e models.Event) models.Event {
	e.Participants = copyIDs(e.Participants)
	e.Dates = append([]string(nil), e.Dates...)
	prizes := make([]models.Prize, len(e.Prizes))
	copy(prizes, e.Prizes)
	e.Prizes = prizes
	return e
}

func copyUser(u models.User) models.User {
	u.AdminOfClub = copyIDs(u.AdminOfClub)
	u.ParticipatedEvents = copyIDs(u.ParticipatedEvents)
	return u
}

func copyEntry(e models.CascadeEntry) models.CascadeEntry {
	steps := make([]models.CascadeStep, len(e.Steps))
	copy(steps, e.Steps)
	e.Steps = steps
	if e.CompletedAt != nil {
		at := *e.CompletedAt
		e.CompletedAt = &at
	}
	return e
}

/* ------------------------------- clubs -------------------------------- */

type ClubStore struct {
	db *DB
}

func (s *ClubStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clubs[id]
	if !ok {
		return models.Club{}, store.ErrNotFound
	}
	return copyClub(c), nil
}

func (s *ClubStore) List(_ context.Context) ([]models.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Club, 0, len(s.db.clubs))
	for _, c := range s.db.clubs {
		out = append(out, copyClub(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameCI < out[j].NameCI })
	return out, nil
}

func (s *ClubStore) Create(_ context.Context, c models.Club) (models.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	if c.Admins == nil {
		c.Admins = []primitive.ObjectID{}
	}
	if c.Events == nil {
		c.Events = []primitive.ObjectID{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	s.db.clubs[c.ID] = copyClub(c)
	return c, nil
}

func (s *ClubStore) Save(_ context.Context, c models.Club) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c.UpdatedAt = time.Now().UTC()
	s.db.clubs[c.ID] = copyClub(c)
	return nil
}

func (s *ClubStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.clubs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.clubs, id)
	return nil
}

/* ------------------------------- events ------------------------------- */

type EventStore struct {
	db *DB
}

func (s *EventStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.events[id]
	if !ok {
		return models.Event{}, store.ErrNotFound
	}
	return copyEvent(e), nil
}

func (s *EventStore) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Event
	for _, id := range ids {
		if e, ok := s.db.events[id]; ok {
			out = append(out, copyEvent(e))
		}
	}
	return out, nil
}

func (s *EventStore) List(_ context.Context) ([]models.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Event, 0, len(s.db.events))
	for _, e := range s.db.events {
		out = append(out, copyEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *EventStore) Create(_ context.Context, e models.Event) (models.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	if e.Participants == nil {
		e.Participants = []primitive.ObjectID{}
	}
	if e.Prizes == nil {
		e.Prizes = []models.Prize{}
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	s.db.events[e.ID] = copyEvent(e)
	return e, nil
}

func (s *EventStore) Save(_ context.Context, e models.Event) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e.UpdatedAt = time.Now().UTC()
	s.db.events[e.ID] = copyEvent(e)
	return nil
}

func (s *EventStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.events, id)
	return nil
}

/* -------------------------------- users ------------------------------- */

type UserStore struct {
	db *DB
}

func (s *UserStore) GetByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	want := normalize.Email(email)
	for _, u := range s.db.users {
		if u.Email == want {
			return copyUser(u), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *UserStore) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := s.db.users[id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (s *UserStore) Create(_ context.Context, u models.User) (models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	if u.AdminOfClub == nil {
		u.AdminOfClub = []primitive.ObjectID{}
	}
	if u.ParticipatedEvents == nil {
		u.ParticipatedEvents = []primitive.ObjectID{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	s.db.users[u.ID] = copyUser(u)
	return u, nil
}

func (s *UserStore) Save(_ context.Context, u models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u.UpdatedAt = time.Now().UTC()
	s.db.users[u.ID] = copyUser(u)
	return nil
}

func (s *UserStore) PullAdminOfClub(_ context.Context, userIDs []primitive.ObjectID, clubID primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, id := range userIDs {
		u, ok := s.db.users[id]
		if !ok {
			continue
		}
		u.AdminOfClub = removeID(u.AdminOfClub, clubID)
		u.UpdatedAt = time.Now().UTC()
		s.db.users[id] = u
	}
	return nil
}

func (s *UserStore) PullParticipatedEvent(_ context.Context, userIDs []primitive.ObjectID, eventID primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, id := range userIDs {
		u, ok := s.db.users[id]
		if !ok {
			continue
		}
		u.ParticipatedEvents = removeID(u.ParticipatedEvents, eventID)
		u.UpdatedAt = time.Now().UTC()
		s.db.users[id] = u
	}
	return nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

/* ------------------------------ cascades ------------------------------ */

type CascadeStore struct {
	db *DB
}

func (s *CascadeStore) Insert(_ context.Context, e models.CascadeEntry) (models.CascadeEntry, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e.ID = primitive.NewObjectID()
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now().UTC()
	}
	if e.Steps == nil {
		e.Steps = []models.CascadeStep{}
	}
	s.db.cascades[e.ID] = copyEntry(e)
	return e, nil
}

func (s *CascadeStore) AppendStep(_ context.Context, id primitive.ObjectID, step models.CascadeStep) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.cascades[id]
	if !ok {
		return store.ErrNotFound
	}
	if step.At.IsZero() {
		step.At = time.Now().UTC()
	}
	e.Steps = append(e.Steps, step)
	s.db.cascades[id] = e
	return nil
}

func (s *CascadeStore) MarkCompleted(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.cascades[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	e.CompletedAt = &now
	s.db.cascades[id] = e
	return nil
}

func (s *CascadeStore) ListIncomplete(_ context.Context) ([]models.CascadeEntry, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.CascadeEntry
	for _, e := range s.db.cascades {
		if e.CompletedAt == nil {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}
