package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/domain/identity"
	"github.com/peopledesk/peopledesk-api/internal/domain/leave"
	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/repository/postgresql"
)

// demoMember is one entry of the fixed demo roster.
type demoMember struct {
	Email      string
	Password   string
	FullName   string
	Role       role.Role
	Department string
	Position   string
}

var demoRoster = []demoMember{
	{Email: "admin@peopledesk.dev", Password: "admin12345", FullName: "Dana Whitfield", Role: role.RoleAdmin, Department: "Operations", Position: "HR Director"},
	{Email: "alice@peopledesk.dev", Password: "alice12345", FullName: "Alice Nguyen", Role: role.RoleEmployee, Department: "Engineering", Position: "Backend Engineer"},
	{Email: "bob@peopledesk.dev", Password: "bob1234567", FullName: "Bob Hartono", Role: role.RoleEmployee, Department: "Engineering", Position: "Frontend Engineer"},
	{Email: "carol@peopledesk.dev", Password: "carol12345", FullName: "Carol Siregar", Role: role.RoleEmployee, Department: "Finance", Position: "Accountant"},
}

// CreatedIdentity is one row of the success payload.
type CreatedIdentity struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     role.Role `json:"role"`
}

// Result reports what the run did. AlreadySeeded true means the roster was
// found in place and nothing was written.
type Result struct {
	AlreadySeeded bool              `json:"already_seeded"`
	Created       []CreatedIdentity `json:"created,omitempty"`
}

type Service interface {
	Run(ctx context.Context) (Result, error)
}

type serviceImpl struct {
	db         *database.DB
	identities identity.Repository
	roles      role.Repository
	profiles   profile.Repository
	requests   leave.Repository
	records    attendance.Repository
	now        func() time.Time
}

func NewSeedService(
	db *database.DB,
	identities identity.Repository,
	roles role.Repository,
	profiles profile.Repository,
	requests leave.Repository,
	records attendance.Repository,
) Service {
	return &serviceImpl{
		db:         db,
		identities: identities,
		roles:      roles,
		profiles:   profiles,
		requests:   requests,
		records:    records,
		now:        time.Now,
	}
}

// Run seeds the demo roster. Identities, roles and profiles are created in
// one transaction per roster member and any failure there aborts the whole
// batch. The sample leave and attendance rows afterwards are best-effort:
// failures are logged and skipped.
func (s *serviceImpl) Run(ctx context.Context) (Result, error) {
	// Idempotence probe: any roster email already present means a prior
	// run completed (or partially ran); write nothing.
	for _, m := range demoRoster {
		_, err := s.identities.GetByEmail(ctx, m.Email)
		if err == nil {
			return Result{AlreadySeeded: true}, nil
		}
		if !errors.Is(err, identity.ErrNotFound) {
			return Result{}, fmt.Errorf("probe %s: %w", m.Email, err)
		}
	}

	created := make([]CreatedIdentity, 0, len(demoRoster))
	byEmail := make(map[string]string, len(demoRoster))

	for _, m := range demoRoster {
		id, err := s.createMember(ctx, m)
		if err != nil {
			return Result{}, fmt.Errorf("seed %s: %w", m.Email, err)
		}
		created = append(created, CreatedIdentity{ID: id, Email: m.Email, FullName: m.FullName, Role: m.Role})
		byEmail[m.Email] = id
	}

	s.seedSamples(ctx, byEmail)

	return Result{Created: created}, nil
}

func (s *serviceImpl) createMember(ctx context.Context, m demoMember) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)

	var id string
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		createdID, err := s.identities.Create(txCtx, identity.Identity{
			Email:        m.Email,
			PasswordHash: &hashed,
		})
		if err != nil {
			return err
		}
		id = createdID.ID

		if _, err := s.roles.Assign(txCtx, id, m.Role); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}

		dept, pos := m.Department, m.Position
		if _, err := s.profiles.Create(txCtx, profile.Profile{
			ID:         id,
			Email:      m.Email,
			FullName:   m.FullName,
			Department: &dept,
			Position:   &pos,
		}); err != nil {
			return fmt.Errorf("provision profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// seedSamples inserts demonstration leave requests and attendance records
// with dates relative to today.
func (s *serviceImpl) seedSamples(ctx context.Context, byEmail map[string]string) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if aliceID, ok := byEmail["alice@peopledesk.dev"]; ok {
		start := today.AddDate(0, 0, 7)
		end := today.AddDate(0, 0, 11)
		if _, err := s.requests.Create(ctx, leave.Request{
			EmployeeID: aliceID,
			LeaveType:  leave.TypeVacation,
			StartDate:  start,
			EndDate:    end,
			DaysCount:  leave.DaysCount(start, end),
			Reason:     "Family trip",
			Status:     leave.StatusPending,
		}); err != nil {
			slog.Warn("seed: sample leave request skipped", "email", "alice@peopledesk.dev", "error", err)
		}
	}

	if bobID, ok := byEmail["bob@peopledesk.dev"]; ok {
		start := today.AddDate(0, 0, -3)
		if _, err := s.requests.Create(ctx, leave.Request{
			EmployeeID: bobID,
			LeaveType:  leave.TypeSick,
			StartDate:  start,
			EndDate:    start,
			DaysCount:  1,
			Reason:     "Flu",
			Status:     leave.StatusPending,
		}); err != nil {
			slog.Warn("seed: sample leave request skipped", "email", "bob@peopledesk.dev", "error", err)
		}
	}

	for _, email := range []string{"alice@peopledesk.dev", "bob@peopledesk.dev", "carol@peopledesk.dev"} {
		employeeID, ok := byEmail[email]
		if !ok {
			continue
		}
		for offset := 1; offset <= 2; offset++ {
			day := today.AddDate(0, 0, -offset)
			checkIn := day.Add(9 * time.Hour)
			checkOut := day.Add(17 * time.Hour)
			if _, err := s.records.Create(ctx, attendance.Record{
				EmployeeID: employeeID,
				Date:       day,
				CheckIn:    checkIn,
				CheckOut:   &checkOut,
				Status:     attendance.DefaultStatus,
			}); err != nil {
				slog.Warn("seed: sample attendance skipped", "email", email, "date", day.Format("2006-01-02"), "error", err)
			}
		}
	}
}
