package seed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/domain/identity"
	"github.com/peopledesk/peopledesk-api/internal/domain/leave"
	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
)

type fakeIdentityRepo struct {
	byEmail map[string]identity.Identity
	creates int
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{byEmail: map[string]identity.Identity{}}
}

func (f *fakeIdentityRepo) Create(_ context.Context, id identity.Identity) (identity.Identity, error) {
	if _, exists := f.byEmail[id.Email]; exists {
		return identity.Identity{}, identity.ErrEmailExists
	}
	f.creates++
	id.ID = fmt.Sprintf("id-%d", f.creates)
	f.byEmail[id.Email] = id
	return id, nil
}

func (f *fakeIdentityRepo) GetByID(_ context.Context, id string) (identity.Identity, error) {
	for _, stored := range f.byEmail {
		if stored.ID == id {
			return stored, nil
		}
	}
	return identity.Identity{}, identity.ErrNotFound
}

func (f *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (identity.Identity, error) {
	stored, ok := f.byEmail[email]
	if !ok {
		return identity.Identity{}, identity.ErrNotFound
	}
	return stored, nil
}

func (f *fakeIdentityRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeRoleRepo struct {
	assigned map[string]role.Role
}

func (f *fakeRoleRepo) RoleOf(_ context.Context, userID string) (role.Role, error) {
	return f.assigned[userID], nil
}

func (f *fakeRoleRepo) Assign(_ context.Context, userID string, r role.Role) (role.Assignment, error) {
	f.assigned[userID] = r
	return role.Assignment{UserID: userID, Role: r}, nil
}

func (f *fakeRoleRepo) Revoke(_ context.Context, userID string, _ role.Role) error {
	delete(f.assigned, userID)
	return nil
}

func (f *fakeRoleRepo) ListByUser(_ context.Context, _ string) ([]role.Assignment, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	byID map[string]profile.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (profile.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, _ string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) List(_ context.Context, _ profile.Filter) ([]profile.Profile, int64, error) {
	return nil, 0, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, _ profile.UpdateProfileRequest) error { return nil }
func (f *fakeProfileRepo) Delete(_ context.Context, _ string) error                       { return nil }

type fakeLeaveRepo struct {
	created []leave.Request
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	req.ID = fmt.Sprintf("lr-%d", len(f.created)+1)
	f.created = append(f.created, req)
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ string) (leave.Request, error) {
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, _ string, _ leave.Filter) ([]leave.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) ListAll(_ context.Context, _ leave.Filter) ([]leave.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, _ leave.UpdateRequest) error { return nil }

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, _ string, _ leave.Status, _ string) error {
	return nil
}

func (f *fakeLeaveRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeAttendanceRepo struct {
	created []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	rec.ID = fmt.Sprintf("att-%d", len(f.created)+1)
	f.created = append(f.created, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, _ string, _ attendance.Filter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListAll(_ context.Context, _ attendance.Filter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(_ context.Context, _ string, _ time.Time, _ *string) error {
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, _ string) error { return nil }

type testEnv struct {
	svc        Service
	mock       pgxmock.PgxPoolIface
	identities *fakeIdentityRepo
	roles      *fakeRoleRepo
	profiles   *fakeProfileRepo
	requests   *fakeLeaveRepo
	records    *fakeAttendanceRepo
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	env := testEnv{
		mock:       mock,
		identities: newFakeIdentityRepo(),
		roles:      &fakeRoleRepo{assigned: map[string]role.Role{}},
		profiles:   &fakeProfileRepo{byID: map[string]profile.Profile{}},
		requests:   &fakeLeaveRepo{},
		records:    &fakeAttendanceRepo{},
	}
	env.svc = NewSeedService(&database.DB{Pool: mock}, env.identities, env.roles, env.profiles, env.requests, env.records)
	return env
}

func TestRunSeedsRoster(t *testing.T) {
	env := newTestEnv(t)
	for range demoRoster {
		env.mock.ExpectBegin()
		env.mock.ExpectCommit()
	}

	result, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.AlreadySeeded)
	assert.Len(t, result.Created, len(demoRoster))

	// One admin, rest employees, each with a profile.
	admins := 0
	for _, c := range result.Created {
		if c.Role == role.RoleAdmin {
			admins++
		}
		assert.Equal(t, c.Role, env.roles.assigned[c.ID])
		assert.Equal(t, c.Email, env.profiles.byID[c.ID].Email)
	}
	assert.Equal(t, 1, admins)

	// Sample data landed too.
	assert.NotEmpty(t, env.requests.created)
	assert.NotEmpty(t, env.records.created)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestRunIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.identities.byEmail[demoRoster[0].Email] = identity.Identity{
		ID:    "already-there",
		Email: demoRoster[0].Email,
	}

	result, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AlreadySeeded)
	assert.Empty(t, result.Created)

	// No writes at all: no transaction began, nothing else was touched.
	assert.Equal(t, 0, env.identities.creates)
	assert.Empty(t, env.roles.assigned)
	assert.Empty(t, env.profiles.byID)
	assert.Empty(t, env.requests.created)
	assert.Empty(t, env.records.created)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
