package role

import (
	"context"
	"fmt"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	activityService "github.com/peopledesk/peopledesk-api/internal/service/activity"
)

type Service interface {
	// RoleOf is the requester's own effective role; always permitted.
	RoleOf(ctx context.Context, actorID string) (role.Role, error)
	ListByUser(ctx context.Context, actorID, targetUserID string) ([]role.Assignment, error)
	Assign(ctx context.Context, actorID, targetUserID string, r role.Role) (role.Assignment, error)
	Revoke(ctx context.Context, actorID, targetUserID string, r role.Role) error
}

type serviceImpl struct {
	roles    role.Repository
	activity activityService.Logger
}

func NewRoleService(roles role.Repository, activity activityService.Logger) Service {
	return &serviceImpl{roles: roles, activity: activity}
}

func (s *serviceImpl) requester(ctx context.Context, actorID string) (authz.Requester, error) {
	ro, err := s.roles.RoleOf(ctx, actorID)
	if err != nil {
		return authz.Requester{}, fmt.Errorf("resolve role: %w", err)
	}
	return authz.Requester{UserID: actorID, Role: ro}, nil
}

func (s *serviceImpl) RoleOf(ctx context.Context, actorID string) (role.Role, error) {
	return s.roles.RoleOf(ctx, actorID)
}

func (s *serviceImpl) ListByUser(ctx context.Context, actorID, targetUserID string) ([]role.Assignment, error) {
	req, err := s.requester(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(authz.OpRead, authz.CollectionUserRoles, req, authz.Row{OwnerID: targetUserID}); err != nil {
		return nil, err
	}
	return s.roles.ListByUser(ctx, targetUserID)
}

func (s *serviceImpl) Assign(ctx context.Context, actorID, targetUserID string, r role.Role) (role.Assignment, error) {
	if !r.Valid() {
		return role.Assignment{}, role.ErrInvalidRole
	}

	req, err := s.requester(ctx, actorID)
	if err != nil {
		return role.Assignment{}, err
	}
	if err := authz.Require(authz.OpCreate, authz.CollectionUserRoles, req, authz.Row{OwnerID: targetUserID}); err != nil {
		return role.Assignment{}, err
	}

	a, err := s.roles.Assign(ctx, targetUserID, r)
	if err != nil {
		return role.Assignment{}, err
	}

	s.activity.Log(ctx, actorID, "assigned", "user_role", &a.ID, fmt.Sprintf("Assigned role %s to user %s", r, targetUserID))
	return a, nil
}

func (s *serviceImpl) Revoke(ctx context.Context, actorID, targetUserID string, r role.Role) error {
	if !r.Valid() {
		return role.ErrInvalidRole
	}

	req, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}
	if err := authz.Require(authz.OpDelete, authz.CollectionUserRoles, req, authz.Row{OwnerID: targetUserID}); err != nil {
		return err
	}

	if err := s.roles.Revoke(ctx, targetUserID, r); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "revoked", "user_role", nil, fmt.Sprintf("Revoked role %s from user %s", r, targetUserID))
	return nil
}
