package profile

import (
	"context"
	"fmt"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
	activityService "github.com/peopledesk/peopledesk-api/internal/service/activity"
)

type Service interface {
	List(ctx context.Context, actorID string, filter profile.Filter) ([]profile.Profile, int64, error)
	Get(ctx context.Context, actorID, profileID string) (profile.Profile, error)
	// Create is the direct admin insert; normal profiles come from the
	// signup bootstrap instead.
	Create(ctx context.Context, actorID string, req profile.CreateProfileRequest) (profile.Profile, error)
	Update(ctx context.Context, actorID string, req profile.UpdateProfileRequest) error
	Delete(ctx context.Context, actorID, profileID string) error
}

type serviceImpl struct {
	profiles profile.Repository
	roles    role.Repository
	activity activityService.Logger
}

func NewProfileService(profiles profile.Repository, roles role.Repository, activity activityService.Logger) Service {
	return &serviceImpl{profiles: profiles, roles: roles, activity: activity}
}

func (s *serviceImpl) requester(ctx context.Context, actorID string) (authz.Requester, error) {
	ro, err := s.roles.RoleOf(ctx, actorID)
	if err != nil {
		return authz.Requester{}, fmt.Errorf("resolve role: %w", err)
	}
	return authz.Requester{UserID: actorID, Role: ro}, nil
}

func (s *serviceImpl) List(ctx context.Context, actorID string, filter profile.Filter) ([]profile.Profile, int64, error) {
	req, err := s.requester(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := authz.Require(authz.OpRead, authz.CollectionProfiles, req, authz.Row{}); err != nil {
		return nil, 0, err
	}
	return s.profiles.List(ctx, filter)
}

func (s *serviceImpl) Get(ctx context.Context, actorID, profileID string) (profile.Profile, error) {
	req, err := s.requester(ctx, actorID)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := authz.Require(authz.OpRead, authz.CollectionProfiles, req, authz.Row{OwnerID: profileID}); err != nil {
		return profile.Profile{}, err
	}
	return s.profiles.GetByID(ctx, profileID)
}

func (s *serviceImpl) Create(ctx context.Context, actorID string, req profile.CreateProfileRequest) (profile.Profile, error) {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := authz.Require(authz.OpCreate, authz.CollectionProfiles, requester, authz.Row{OwnerID: req.ID}); err != nil {
		return profile.Profile{}, err
	}

	p := profile.Profile{
		ID:         req.ID,
		Email:      req.Email,
		FullName:   req.FullName,
		Department: req.Department,
		Position:   req.Position,
		Phone:      req.Phone,
		AvatarURL:  req.AvatarURL,
	}
	if req.HireDate != nil {
		if d, ok := validator.IsValidDate(*req.HireDate); ok {
			p.HireDate = &d
		}
	}

	created, err := s.profiles.Create(ctx, p)
	if err != nil {
		return profile.Profile{}, err
	}

	s.activity.Log(ctx, actorID, "created", "profile", &created.ID, "Created profile for "+created.Email)
	return created, nil
}

func (s *serviceImpl) Update(ctx context.Context, actorID string, req profile.UpdateProfileRequest) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}

	// Row-level check runs against the stored row.
	stored, err := s.profiles.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := authz.Require(authz.OpUpdate, authz.CollectionProfiles, requester, authz.Row{OwnerID: stored.ID}); err != nil {
		return err
	}

	if err := s.profiles.Update(ctx, req); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "updated", "profile", &stored.ID, "Updated profile "+stored.Email)
	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actorID, profileID string) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}
	if err := authz.Require(authz.OpDelete, authz.CollectionProfiles, requester, authz.Row{OwnerID: profileID}); err != nil {
		return err
	}

	if err := s.profiles.Delete(ctx, profileID); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "deleted", "profile", &profileID, "Deleted profile")
	return nil
}
