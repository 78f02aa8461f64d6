// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents club admins, event participants, and prize winners.
// Registration and profile management live outside this service; the core
// only mutates AdminOfClub and ParticipatedEvents, which mirror
// Club.Admins and Event.Participants.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Email      string             `bson:"email" json:"email"`
	SuperAdmin bool               `bson:"super_admin" json:"super_admin"`

	AdminOfClub        []primitive.ObjectID `bson:"admin_of_club" json:"admin_of_club"`
	ParticipatedEvents []primitive.ObjectID `bson:"participated_events" json:"participated_events"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
