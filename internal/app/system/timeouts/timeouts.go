// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts are used with context.WithTimeout for database operations
// and other I/O in HTTP handlers. Using centralized values ensures consistency
// and makes it easy to adjust timeouts across the application.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: cascading deletes and other multi-collection writes
package timeouts

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// Ping is the timeout for health checks and connectivity verification.
	Ping = 2 * time.Second
	// Short is the timeout for simple operations like single-document
	// reads. Examples: get club by ID, lookup a user by email.
	Short = 5 * time.Second
	// Medium is the timeout for moderate operations like list queries and
	// writes that touch a handful of records.
	Medium = 10 * time.Second
	// Long is the timeout for operations touching multiple collections.
	// Examples: deleting a club with its events and back-references.
	Long = 30 * time.Second
)

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the deadline was exceeded. Use this for the
// cascading deletes, where a timeout means a possibly dangling reference.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
