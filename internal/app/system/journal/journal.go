// internal/app/system/journal/journal.go

// Package journal records multi-record cascades as they run. The entity
// store gives no cross-record atomicity, so each cascade writes a journal
// entry up front, appends a step per completed write, and marks the entry
// complete at the end. An entry that never completes is the operator's
// signal that back-references may be dangling and need repair.
//
// It writes to both the cascade store and zap, mirroring how audit-style
// logging is done elsewhere; a nil *Recorder is a no-op so tests that do
// not care about journaling can pass nil.
package journal

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/store"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Cascade operation names.
const (
	OpDeleteClub  = "delete_club"
	OpDeleteEvent = "delete_event"
)

// Recorder journals cascades to the cascade store and zap.
type Recorder struct {
	store  store.CascadeStore
	zapLog *zap.Logger
}

// New creates a Recorder. Both arguments must be non-nil.
func New(cs store.CascadeStore, zapLog *zap.Logger) *Recorder {
	return &Recorder{store: cs, zapLog: zapLog}
}

// Entry is the handle for one in-flight cascade.
type Entry struct {
	rec  *Recorder
	id   primitive.ObjectID
	opID string
	op   string
}

// Begin opens a journal entry for a cascade on the given target. Journal
// failures are logged, never fatal: a cascade must not be blocked by its
// own bookkeeping.
func (r *Recorder) Begin(ctx context.Context, op string, targetID primitive.ObjectID) *Entry {
	if r == nil {
		return nil
	}
	opID := uuid.NewString()
	entry, err := r.store.Insert(ctx, models.CascadeEntry{
		OpID:     opID,
		Op:       op,
		TargetID: targetID,
	})
	if err != nil {
		r.zapLog.Warn("cascade journal begin failed",
			zap.String("op", op),
			zap.String("op_id", opID),
			zap.String("target_id", targetID.Hex()),
			zap.Error(err))
		return nil
	}
	r.zapLog.Info("cascade started",
		zap.String("op", op),
		zap.String("op_id", opID),
		zap.String("target_id", targetID.Hex()))
	return &Entry{rec: r, id: entry.ID, opID: opID, op: op}
}

// Step records one completed write of the cascade.
func (e *Entry) Step(ctx context.Context, name string, targetID primitive.ObjectID) {
	if e == nil {
		return
	}
	err := e.rec.store.AppendStep(ctx, e.id, models.CascadeStep{Name: name, TargetID: targetID})
	if err != nil {
		e.rec.zapLog.Warn("cascade journal step failed",
			zap.String("op", e.op),
			zap.String("op_id", e.opID),
			zap.String("step", name),
			zap.Error(err))
	}
}

// Complete marks the cascade as fully applied.
func (e *Entry) Complete(ctx context.Context) {
	if e == nil {
		return
	}
	if err := e.rec.store.MarkCompleted(ctx, e.id); err != nil {
		e.rec.zapLog.Warn("cascade journal complete failed",
			zap.String("op", e.op),
			zap.String("op_id", e.opID),
			zap.Error(err))
		return
	}
	e.rec.zapLog.Info("cascade completed",
		zap.String("op", e.op),
		zap.String("op_id", e.opID))
}
