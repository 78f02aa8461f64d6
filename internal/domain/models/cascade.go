// internal/domain/models/cascade.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CascadeStep records one completed step of a multi-record cascade.
type CascadeStep struct {
	Name     string             `bson:"name" json:"name"`
	TargetID primitive.ObjectID `bson:"target_id" json:"target_id"`
	At       time.Time          `bson:"at" json:"at"`
}

// CascadeEntry is the journal record for one multi-record cascade
// (club delete, event delete). The store gives no multi-record atomicity,
// so an entry whose CompletedAt is nil after its writer has gone away
// marks a partial cascade an operator can detect and repair.
type CascadeEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OpID     string             `bson:"op_id" json:"op_id"`
	Op       string             `bson:"op" json:"op"`
	TargetID primitive.ObjectID `bson:"target_id" json:"target_id"`
	Steps    []CascadeStep      `bson:"steps" json:"steps"`

	StartedAt   time.Time  `bson:"started_at" json:"started_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
