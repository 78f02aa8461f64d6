// internal/app/store/cascades/cascadestore.go
package cascadestore

import (
	"context"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cascades")}
}

func (s *Store) Insert(ctx context.Context, e models.CascadeEntry) (models.CascadeEntry, error) {
	e.ID = primitive.NewObjectID()
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now().UTC()
	}
	if e.Steps == nil {
		e.Steps = []models.CascadeStep{}
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.CascadeEntry{}, err
	}
	return e, nil
}

func (s *Store) AppendStep(ctx context.Context, id primitive.ObjectID, step models.CascadeStep) error {
	if step.At.IsZero() {
		step.At = time.Now().UTC()
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$push": bson.M{"steps": step}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) MarkCompleted(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"completed_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListIncomplete returns journal entries that never received a completion
// mark, oldest first. These are the candidates for operator repair after a
// crash mid-cascade.
func (s *Store) ListIncomplete(ctx context.Context) ([]models.CascadeEntry, error) {
	filter := bson.M{"completed_at": bson.M{"$exists": false}}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var entries []models.CascadeEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
