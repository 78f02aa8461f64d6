// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize is one entry in an event's ordered prize list. Winner is nil until
// a winner is assigned (or when the supplied winner email did not resolve
// to a known user).
type Prize struct {
	Type   string              `bson:"type" json:"type"`
	Amount int                 `bson:"amount" json:"amount"`
	Winner *primitive.ObjectID `bson:"winner,omitempty" json:"winner,omitempty"`
}

// Event is an activity run by exactly one club. Club is immutable after
// creation; events are never reassigned to another club.
//
// Participants is a denormalized id list mirrored by
// User.ParticipatedEvents; both sides are maintained by relation.Maintainer.
type Event struct {
	ID           primitive.ObjectID   `bson:"_id" json:"id"`
	Club         primitive.ObjectID   `bson:"club" json:"club"`
	Name         string               `bson:"name" json:"name"`
	Description  string               `bson:"description" json:"description"`
	Details      string               `bson:"details" json:"details"`
	Dates        []string             `bson:"dates" json:"dates"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Prizes       []Prize              `bson:"prizes" json:"prizes"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether the given user id is registered.
func (e Event) HasParticipant(userID primitive.ObjectID) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
