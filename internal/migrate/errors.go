package migrate

import (
	"errors"
	"fmt"
)

// ChannelOperationError means creating or resolving a channel failed.
// It aborts the remaining processing of that channel only; the run
// continues with the next channel.
type ChannelOperationError struct {
	Channel string
	Op      string
	Err     error
}

func (e *ChannelOperationError) Error() string {
	return fmt.Sprintf("channel %q: %s: %v", e.Channel, e.Op, e.Err)
}

func (e *ChannelOperationError) Unwrap() error { return e.Err }

// UnresolvedThreadRootError means a reply references a thread root
// that was never migrated, e.g. after a partial prior run. The reply
// is dropped with a warning.
type UnresolvedThreadRootError struct {
	Timestamp string
	ThreadKey string
}

func (e *UnresolvedThreadRootError) Error() string {
	return fmt.Sprintf("message %s: thread root %s not in lookup table", e.Timestamp, e.ThreadKey)
}

// FinalizationError wraps a completeMigration failure. It is fatal to
// the entire run: a channel or team stuck in migration mode blocks
// all further operations on the team and needs manual recovery.
type FinalizationError struct {
	Scope string // "channel" or "team"
	Name  string
	Err   error
}

func (e *FinalizationError) Error() string {
	return fmt.Sprintf("complete %s migration for %q: %v", e.Scope, e.Name, e.Err)
}

func (e *FinalizationError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed flush of resumable state. It is
// fatal: continuing without a durable lookup table would duplicate
// thread roots on the next run.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist migration state: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsFatal reports whether err must unwind to the process boundary
// instead of skipping to the next channel.
func IsFatal(err error) bool {
	var fin *FinalizationError
	var per *PersistenceError
	return errors.As(err, &fin) || errors.As(err, &per)
}
