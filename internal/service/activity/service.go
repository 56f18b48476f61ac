package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/activity"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
)

type Logger interface {
	// Log appends an audit entry on behalf of actorID. It is best-effort:
	// failures are logged and swallowed so the triggering mutation is never
	// rolled back because of observability.
	Log(ctx context.Context, actorID, action, entityType string, entityID *string, description string)
	List(ctx context.Context, actorID string, limit int) ([]activity.Entry, error)
}

type loggerImpl struct {
	entries activity.Repository
	roles   role.Repository
}

func NewActivityLogger(entries activity.Repository, roles role.Repository) Logger {
	return &loggerImpl{entries: entries, roles: roles}
}

func (l *loggerImpl) Log(ctx context.Context, actorID, action, entityType string, entityID *string, description string) {
	req := authz.Requester{UserID: actorID}
	if !authz.Allowed(authz.OpCreate, authz.CollectionActivityLogs, req, authz.Row{}) {
		slog.Warn("activity log write denied", "actor", actorID, "action", action)
		return
	}

	_, err := l.entries.Create(ctx, activity.Entry{
		ID:          uuid.NewString(),
		UserID:      actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	})
	if err != nil {
		slog.Warn("activity log write failed", "actor", actorID, "action", action, "error", err)
	}
}

func (l *loggerImpl) List(ctx context.Context, actorID string, limit int) ([]activity.Entry, error) {
	ro, err := l.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	req := authz.Requester{UserID: actorID, Role: ro}
	if err := authz.Require(authz.OpRead, authz.CollectionActivityLogs, req, authz.Row{}); err != nil {
		return nil, err
	}
	return l.entries.List(ctx, limit)
}
