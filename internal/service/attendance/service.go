package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
	activityService "github.com/peopledesk/peopledesk-api/internal/service/activity"
)

type Service interface {
	// CheckIn records a check-in for the actor, or for req.EmployeeID when
	// an admin files it on someone's behalf.
	CheckIn(ctx context.Context, actorID string, req attendance.CheckInRequest) (attendance.Record, error)
	CheckOut(ctx context.Context, actorID, recordID string, req attendance.CheckOutRequest) error
	List(ctx context.Context, actorID string, filter attendance.Filter) ([]attendance.Record, int64, error)
	Delete(ctx context.Context, actorID, recordID string) error
}

type serviceImpl struct {
	records  attendance.Repository
	roles    role.Repository
	activity activityService.Logger
	now      func() time.Time
}

func NewAttendanceService(records attendance.Repository, roles role.Repository, activity activityService.Logger) Service {
	return &serviceImpl{records: records, roles: roles, activity: activity, now: time.Now}
}

func (s *serviceImpl) requester(ctx context.Context, actorID string) (authz.Requester, error) {
	ro, err := s.roles.RoleOf(ctx, actorID)
	if err != nil {
		return authz.Requester{}, fmt.Errorf("resolve role: %w", err)
	}
	return authz.Requester{UserID: actorID, Role: ro}, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, actorID string, req attendance.CheckInRequest) (attendance.Record, error) {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return attendance.Record{}, err
	}

	employeeID := actorID
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		employeeID = *req.EmployeeID
	}
	if err := authz.Require(authz.OpCreate, authz.CollectionAttendanceRecords, requester, authz.Row{OwnerID: employeeID}); err != nil {
		return attendance.Record{}, err
	}

	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.Date != nil {
		if d, ok := validator.IsValidDate(*req.Date); ok {
			day = d
		}
	}

	status := attendance.DefaultStatus
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	// No prior existence check: the unique (employee_id, date) constraint
	// decides the race between concurrent check-ins.
	created, err := s.records.Create(ctx, attendance.Record{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    now,
		Status:     status,
		Notes:      req.Notes,
	})
	if err != nil {
		return attendance.Record{}, err
	}

	s.activity.Log(ctx, actorID, "checked_in", "attendance_record", &created.ID,
		"Checked in for "+day.Format("2006-01-02"))
	return created, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, actorID, recordID string, req attendance.CheckOutRequest) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}

	stored, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if err := authz.Require(authz.OpUpdate, authz.CollectionAttendanceRecords, requester, authz.Row{OwnerID: stored.EmployeeID}); err != nil {
		return err
	}
	if stored.CheckOut != nil {
		return attendance.ErrAlreadyCheckedOut
	}

	if err := s.records.SetCheckOut(ctx, recordID, s.now(), req.Notes); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "checked_out", "attendance_record", &recordID, "Checked out")
	return nil
}

func (s *serviceImpl) List(ctx context.Context, actorID string, filter attendance.Filter) ([]attendance.Record, int64, error) {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	if requester.Role == role.RoleAdmin {
		return s.records.ListAll(ctx, filter)
	}
	return s.records.ListByEmployee(ctx, actorID, filter)
}

func (s *serviceImpl) Delete(ctx context.Context, actorID, recordID string) error {
	requester, err := s.requester(ctx, actorID)
	if err != nil {
		return err
	}

	stored, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if err := authz.Require(authz.OpDelete, authz.CollectionAttendanceRecords, requester, authz.Row{OwnerID: stored.EmployeeID}); err != nil {
		return err
	}

	if err := s.records.Delete(ctx, recordID); err != nil {
		return err
	}

	s.activity.Log(ctx, actorID, "deleted", "attendance_record", &recordID, "Deleted attendance record")
	return nil
}
