package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/activity"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
)

type fakeEntryRepo struct {
	entries   []activity.Entry
	createErr error
}

func (f *fakeEntryRepo) Create(_ context.Context, e activity.Entry) (activity.Entry, error) {
	if f.createErr != nil {
		return activity.Entry{}, f.createErr
	}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeEntryRepo) List(_ context.Context, limit int) ([]activity.Entry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

type fakeRoleRepo struct {
	roles map[string]role.Role
}

func (f *fakeRoleRepo) RoleOf(_ context.Context, userID string) (role.Role, error) {
	return f.roles[userID], nil
}

func (f *fakeRoleRepo) Assign(_ context.Context, userID string, r role.Role) (role.Assignment, error) {
	f.roles[userID] = r
	return role.Assignment{UserID: userID, Role: r}, nil
}

func (f *fakeRoleRepo) Revoke(_ context.Context, userID string, _ role.Role) error {
	delete(f.roles, userID)
	return nil
}

func (f *fakeRoleRepo) ListByUser(_ context.Context, _ string) ([]role.Assignment, error) {
	return nil, nil
}

func TestLogAppendsEntry(t *testing.T) {
	repo := &fakeEntryRepo{}
	logger := NewActivityLogger(repo, &fakeRoleRepo{roles: map[string]role.Role{}})

	entityID := "lr-1"
	logger.Log(context.Background(), "alice", "applied", "leave_request", &entityID, "Applied for vacation leave")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "alice", entry.UserID)
	assert.Equal(t, "applied", entry.Action)
	assert.Equal(t, "leave_request", entry.EntityType)
}

func TestLogSwallowsWriteFailures(t *testing.T) {
	repo := &fakeEntryRepo{createErr: errors.New("connection reset")}
	logger := NewActivityLogger(repo, &fakeRoleRepo{roles: map[string]role.Role{}})

	// Must not panic or surface the error to the caller.
	logger.Log(context.Background(), "alice", "applied", "leave_request", nil, "Applied")
	assert.Empty(t, repo.entries)
}

func TestLogDropsAnonymousWrites(t *testing.T) {
	repo := &fakeEntryRepo{}
	logger := NewActivityLogger(repo, &fakeRoleRepo{roles: map[string]role.Role{}})

	logger.Log(context.Background(), "", "applied", "leave_request", nil, "Applied")
	assert.Empty(t, repo.entries)
}

func TestListRequiresAuthentication(t *testing.T) {
	repo := &fakeEntryRepo{entries: []activity.Entry{{ID: "a"}, {ID: "b"}}}
	roles := &fakeRoleRepo{roles: map[string]role.Role{"alice": role.RoleEmployee}}
	logger := NewActivityLogger(repo, roles)

	got, err := logger.List(context.Background(), "alice", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = logger.List(context.Background(), "", 10)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
