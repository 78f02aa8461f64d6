// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club is an organization that runs events.
//
// NOTE:
//   - Admins and Events are denormalized id lists. The store enforces no
//     referential integrity between them and the users/events collections;
//     every mutation of these lists goes through relation.Maintainer, which
//     keeps the matching back-references (User.AdminOfClub, Event.Club)
//     in sync.
type Club struct {
	ID     primitive.ObjectID   `bson:"_id" json:"id"`
	Name   string               `bson:"name" json:"name"`
	NameCI string               `bson:"name_ci" json:"name_ci"`
	Admins []primitive.ObjectID `bson:"admins" json:"admins"`
	Events []primitive.ObjectID `bson:"events" json:"events"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasAdmin reports whether the given user id is in the club's admin list.
func (c Club) HasAdmin(userID primitive.ObjectID) bool {
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
