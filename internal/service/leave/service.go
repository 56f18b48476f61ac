package leave

import (
	"context"
	"fmt"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/leave"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
	activityService "github.com/peopledesk/peopledesk-api/internal/service/activity"
)

type Service interface {
	// Submit files a request for the actor; employee_id is always the
	// actor's own id, whatever the payload says.
	Submit(ctx context.Context, actorID string, req leave.SubmitRequest) (leave.Request, error)
	Get(ctx context.Context, actorID, requestID string) (leave.Request, error)
	// List returns the actor's own requests, or every request when the
	// actor is an admin.
	List(ctx context.Context, actorID string, filter leave.Filter) ([]leave.Request, int64, error)
	Update(ctx context.Context, actorID string, req leave.UpdateRequest) error
	Approve(ctx context.Context, actorID, requestID string) error
	Reject(ctx context.Context, actorID, requestID string) error
	Delete(ctx context.Context, actorID, requestID string) error
}

type serviceImpl struct {
	requests leave.Repository
	roles    role.Repository
	activity activityService.Logger
}

func NewLeaveService(requests leave.Repository, roles role.Repository, activity activityService.Logger) Service {
	return &serviceImpl{requests: requests, roles: roles, activity: activity}
}

func (s *serviceImpl) requester(ctx context.Context, actorID string) (authz.Requester, error) {
	ro, err := s.roles.RoleOf(ctx, actorID)
	if err != nil {
		return authz.Requester{}, fmt.Errorf("resolve role: %w", err)
	}
	return authz.Requester{UserID: actorID, Role: ro}, nil
}

func (s *serviceImpl) Submit(ctx context.Context, actorID string, req leave.SubmitRequest) (leave.Request, error) {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return leave.Request{}, err
	}
	if err := authz.Require(authz.OpCreate, authz.CollectionLeaveRequests, requester, authz.Row{OwnerID: actorID}); err != nil {
		return leave.Request{}, err
	}

	start, end := req.Dates()

	created, err := s.requests.Create(ctx, leave.Request{
		EmployeeID: actorID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		DaysCount:  leave.DaysCount(start, end),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.Request{}, err
	}

	s.activity.Log(ctx, actorID, "applied", "leave_request", &created.ID,
		fmt.Sprintf("Applied for %s leave (%d days)", created.LeaveType, created.DaysCount))
	return created, nil
}

func (s *serviceImpl) Get(ctx context.Context, actorID, requestID string) (leave.Request, error) {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return leave.Request{}, err
	}

	stored, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if err := authz.Require(authz.OpRead, authz.CollectionLeaveRequests, requester, authz.Row{OwnerID: stored.EmployeeID}); err != nil {
		return leave.Request{}, err
	}
	return stored, nil
}

func (s *serviceImpl) List(ctx context.Context, actorID string, filter leave.Filter) ([]leave.Request, int64, error) {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	if requester.Role == role.RoleAdmin {
		return s.requests.ListAll(ctx, filter)
	}
	return s.requests.ListByEmployee(ctx, actorID, filter)
}

// Update patches non-status fields. The policy check runs against the
// STORED status, so a request the admin just approved can no longer be
// edited by its owner even if the owner raced the approval.
func (s *serviceImpl) Update(ctx context.Context, actorID string, req leave.UpdateRequest) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}

	stored, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	row := authz.Row{OwnerID: stored.EmployeeID, Status: string(stored.Status)}
	if err := authz.Require(authz.OpUpdate, authz.CollectionLeaveRequests, requester, row); err != nil {
		return err
	}

	// The merged date range must stay valid.
	start, end := stored.StartDate, stored.EndDate
	if req.StartDate != nil {
		start, _ = validator.IsValidDate(*req.StartDate)
	}
	if req.EndDate != nil {
		end, _ = validator.IsValidDate(*req.EndDate)
	}
	if end.Before(start) {
		return leave.ErrInvalidDateRange
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "updated", "leave_request", &req.ID, "Updated leave request")
	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, actorID, requestID string) error {
	return s.review(ctx, actorID, requestID, leave.StatusApproved, "approved")
}

func (s *serviceImpl) Reject(ctx context.Context, actorID, requestID string) error {
	return s.review(ctx, actorID, requestID, leave.StatusRejected, "rejected")
}

// review drives the pending -> approved|rejected transition. Status
// transitions are admin-only regardless of row ownership, and terminal
// states never transition again.
func (s *serviceImpl) review(ctx context.Context, actorID, requestID string, to leave.Status, action string) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}
	if requester.Role != role.RoleAdmin {
		return authz.ErrForbidden
	}

	stored, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if stored.Status.Terminal() {
		return leave.ErrAlreadyProcessed
	}

	if err := s.requests.UpdateStatus(ctx, requestID, to, actorID); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, action, "leave_request", &requestID,
		fmt.Sprintf("Leave request %s %s", requestID, action))
	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actorID, requestID string) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}

	stored, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := authz.Require(authz.OpDelete, authz.CollectionLeaveRequests, requester, authz.Row{OwnerID: stored.EmployeeID}); err != nil {
		return err
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "deleted", "leave_request", &requestID, "Deleted leave request")
	return nil
}
