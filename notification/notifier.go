// Package notification dispatches best-effort enrichment events to
// downstream consumers after a token is minted. Dispatch is fire-and-forget:
// the request path never waits for, inspects, or fails on the outcome.
package notification

import (
	"context"

	"github.com/corvus-core/tokenservice/session"
)

// Downstream event names. Each names a serverless core function that
// consumes the freshly assembled session record.
const (
	// EventGetApplicationUserProfile enriches authenticated sessions with
	// the application-level user profile.
	EventGetApplicationUserProfile = "coreGetApplicationUserProfile"
	// EventBuildSecureConnectionParams prepares connection parameters for
	// the new session, regardless of authentication mode.
	EventBuildSecureConnectionParams = "coreBuildSecureConnectionParams"
)

// Notifier dispatches one named event carrying the session record.
// Implementations must be safe for concurrent use. Errors are advisory:
// callers log them and continue, they never fail the request.
type Notifier interface {
	Notify(ctx context.Context, eventName string, record *session.Record) error
}
