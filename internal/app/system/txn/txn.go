// internal/app/system/txn/txn.go

// Package txn wraps multi-record mutations in a MongoDB multi-document
// transaction when the server supports one. Standalone mongod (local dev,
// CI) does not: in that case the callback runs without a session, which
// restores the original one-write-at-a-time semantics and their known
// partial-cascade window.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Transactor runs functions inside a Mongo transaction. It satisfies the
// store.Transactor capability consumed by relation.Maintainer.
type Transactor struct {
	client *mongo.Client
	log    *zap.Logger
}

// New creates a Transactor over the given client.
func New(client *mongo.Client, logger *zap.Logger) *Transactor {
	return &Transactor{client: client, log: logger}
}

// WithTransaction runs fn inside a transaction. If the deployment cannot
// run transactions at all, fn is re-run without a session; the
// not-supported error surfaces before fn has written anything, so the
// fallback does not double-apply writes.
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ses, err := t.client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			t.log.Debug("sessions unsupported, running without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer ses.EndSession(ctx)

	_, err = ses.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		t.log.Debug("transactions unsupported, running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate the deployment cannot run
// multi-document transactions (standalone server, illegal operation).
var notSupportedCodes = map[int32]bool{
	20:  true, // IllegalOperation variant: "Transaction numbers are only allowed on a replica set member"
	51:  true, // IllegalOperation
	263: true, // OperationNotSupportedInTransaction
}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions, as opposed to a transaction that ran and
// failed.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := err.(mongo.CommandError); ok {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
