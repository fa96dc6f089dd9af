package identity

import (
	"context"

	"go.uber.org/zap"
)

// DirectoryUser is one entry of the target system's user directory.
type DirectoryUser struct {
	ID    string
	Email string
}

// Directory is the slice of the messaging backend the reconciler
// needs: bulk directory listing plus a per-email lookup fallback.
type Directory interface {
	// ListUserDirectory fetches the full target user directory.
	ListUserDirectory(ctx context.Context) ([]DirectoryUser, error)
	// LookupUserByEmail resolves a single email to a target user ID.
	// It returns an empty ID with a nil error when no account matches.
	LookupUserByEmail(ctx context.Context, email string) (string, error)
}

// Reconciler maps exported Slack users onto target accounts by exact,
// case-sensitive email equality. Users without an email, or whose
// email matches no account, stay unmapped; that is not an error.
type Reconciler struct {
	dir    Directory
	logger *zap.Logger
}

func NewReconciler(dir Directory, logger *zap.Logger) *Reconciler {
	return &Reconciler{dir: dir, logger: logger}
}

// Reconcile assigns TeamsID to every registry user it can match. It
// prefers one bulk directory fetch; if the backend cannot enumerate
// the directory it falls back to per-email lookups. Reconciliation is
// idempotent and order-independent.
func (r *Reconciler) Reconcile(ctx context.Context, reg *Registry) error {
	directory, err := r.dir.ListUserDirectory(ctx)
	if err != nil {
		r.logger.Warn("Directory listing unavailable, falling back to per-email lookup", zap.Error(err))
		return r.reconcileByLookup(ctx, reg)
	}

	byEmail := make(map[string]string, len(directory))
	for _, du := range directory {
		if du.Email == "" {
			continue
		}
		byEmail[du.Email] = du.ID
	}

	mapped := 0
	for _, u := range reg.Users() {
		if u.Email == "" {
			continue
		}
		if id, ok := byEmail[u.Email]; ok {
			u.TeamsID = id
			mapped++
		} else {
			r.logger.Debug("No target account for user",
				zap.String("slack_id", u.SlackID),
				zap.String("email", u.Email))
		}
	}

	r.logger.Info("Reconciled user registry",
		zap.Int("users", reg.Len()),
		zap.Int("mapped", mapped))
	return nil
}

func (r *Reconciler) reconcileByLookup(ctx context.Context, reg *Registry) error {
	mapped := 0
	for _, u := range reg.Users() {
		if u.Email == "" {
			continue
		}
		id, err := r.dir.LookupUserByEmail(ctx, u.Email)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("User lookup failed",
				zap.String("slack_id", u.SlackID),
				zap.String("email", u.Email),
				zap.Error(err))
			continue
		}
		if id != "" {
			u.TeamsID = id
			mapped++
		}
	}

	r.logger.Info("Reconciled user registry by lookup",
		zap.Int("users", reg.Len()),
		zap.Int("mapped", mapped))
	return nil
}
