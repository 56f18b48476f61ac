package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	activitydomain "github.com/peopledesk/peopledesk-api/internal/domain/activity"
	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
)

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

type fakeActivity struct{}

func (fakeActivity) Log(_ context.Context, _, _, _ string, _ *string, _ string) {}

func (fakeActivity) List(_ context.Context, _ string, _ int) ([]activitydomain.Entry, error) {
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

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (profile.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) List(_ context.Context, _ profile.Filter) ([]profile.Profile, int64, error) {
	out := make([]profile.Profile, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProfileRepo) Update(_ context.Context, req profile.UpdateProfileRequest) error {
	stored, ok := f.byID[req.ID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if req.FullName != nil {
		stored.FullName = *req.FullName
	}
	if req.Department != nil {
		stored.Department = req.Department
	}
	f.byID[req.ID] = stored
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return profile.ErrProfileNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestService() (Service, *fakeProfileRepo) {
	repo := &fakeProfileRepo{byID: map[string]profile.Profile{
		"alice": {ID: "alice", Email: "alice@example.com", FullName: "Alice"},
		"bob":   {ID: "bob", Email: "bob@example.com", FullName: "Bob"},
	}}
	roles := &fakeRoleRepo{roles: map[string]role.Role{
		"alice": role.RoleEmployee,
		"bob":   role.RoleEmployee,
		"admin": role.RoleAdmin,
	}}
	return NewProfileService(repo, roles, fakeActivity{}), repo
}

func TestAnyAuthenticatedUserReadsProfiles(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Directory-style read: employees see each other's profiles.
	got, err := svc.Get(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.FullName)

	profiles, total, err := svc.List(ctx, "alice", profile.Filter{})
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.EqualValues(t, 2, total)
}

func TestCreateIsAdminOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	req := profile.CreateProfileRequest{ID: "carol", Email: "carol@example.com", FullName: "Carol"}

	_, err := svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	created, err := svc.Create(ctx, "admin", req)
	require.NoError(t, err)
	assert.Equal(t, "carol", created.ID)
	assert.Contains(t, repo.byID, "carol")
}

func TestUpdateOwnProfile(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	name := "Alice Nguyen"
	require.NoError(t, svc.Update(ctx, "alice", profile.UpdateProfileRequest{ID: "alice", FullName: &name}))
	assert.Equal(t, "Alice Nguyen", repo.byID["alice"].FullName)

	// But not someone else's.
	err := svc.Update(ctx, "alice", profile.UpdateProfileRequest{ID: "bob", FullName: &name})
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestAdminUpdatesAnyProfile(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	dept := "Engineering"
	require.NoError(t, svc.Update(ctx, "admin", profile.UpdateProfileRequest{ID: "bob", Department: &dept}))
	require.NotNil(t, repo.byID["bob"].Department)
	assert.Equal(t, "Engineering", *repo.byID["bob"].Department)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// Even the owner cannot delete their own profile.
	assert.ErrorIs(t, svc.Delete(ctx, "alice", "alice"), authz.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, "admin", "alice"))
	assert.NotContains(t, repo.byID, "alice")
}

func TestNoRoleAssignmentIsDeniedEverything(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// "ghost" has no role row at all: RoleNone still reads the directory
	// (authenticated) but cannot mutate anything.
	_, err := svc.Get(ctx, "ghost", "alice")
	require.NoError(t, err)

	name := "Ghost"
	err = svc.Update(ctx, "ghost", profile.UpdateProfileRequest{ID: "alice", FullName: &name})
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
