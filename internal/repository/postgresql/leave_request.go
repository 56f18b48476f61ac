package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/peopledesk-api/internal/domain/leave"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

const leaveSelectColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days_count,
	lr.reason, lr.status, lr.reviewed_by, lr.reviewed_at, lr.created_at, lr.updated_at,
	p.full_name AS employee_name, p.email AS employee_email`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepositoryImpl{db: db}
}

func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, days_count,
			reason, status, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.DaysCount,
		req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("insert leave request: %w", err)
	}

	return req, nil
}

func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + leaveSelectColumns + `
		FROM leave_requests lr
		JOIN profiles p ON lr.employee_id = p.id
		WHERE lr.id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.Filter) ([]leave.Request, int64, error) {
	return r.list(ctx, filter, "lr.employee_id = $1", []interface{}{employeeID})
}

func (r *leaveRepositoryImpl) ListAll(ctx context.Context, filter leave.Filter) ([]leave.Request, int64, error) {
	return r.list(ctx, filter, "1=1", nil)
}

func (r *leaveRepositoryImpl) list(ctx context.Context, filter leave.Filter, baseWhere string, args []interface{}) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{baseWhere}
	argIdx := len(args) + 1

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.LeaveType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type = $%d", argIdx))
		args = append(args, *filter.LeaveType)
		argIdx++
	}
	if filter.StartDate != nil {
		if d, ok := validator.IsValidDate(*filter.StartDate); ok {
			whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date >= $%d", argIdx))
			args = append(args, d)
			argIdx++
		}
	}
	if filter.EndDate != nil {
		if d, ok := validator.IsValidDate(*filter.EndDate); ok {
			whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date <= $%d", argIdx))
			args = append(args, d)
			argIdx++
		}
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN profiles p ON lr.employee_id = p.id
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		JOIN profiles p ON lr.employee_id = p.id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveSelectColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan leave request row: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

func (r *leaveRepositoryImpl) Update(ctx context.Context, req leave.UpdateRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.LeaveType != nil {
		updates = append(updates, fmt.Sprintf("leave_type = $%d", argIdx))
		args = append(args, *req.LeaveType)
		argIdx++
	}
	if req.StartDate != nil {
		d, _ := validator.IsValidDate(*req.StartDate)
		updates = append(updates, fmt.Sprintf("start_date = $%d", argIdx))
		args = append(args, d)
		argIdx++
	}
	if req.EndDate != nil {
		d, _ := validator.IsValidDate(*req.EndDate)
		updates = append(updates, fmt.Sprintf("end_date = $%d", argIdx))
		args = append(args, d)
		argIdx++
	}
	if req.Reason != nil {
		updates = append(updates, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *req.Reason)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave request update")
	}

	// Dates changed, so the derived count must follow.
	if req.StartDate != nil || req.EndDate != nil {
		updates = append(updates, "days_count = (end_date - start_date) + 1")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)
	sql := "UPDATE leave_requests SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("update leave request %s: %w", req.ID, err)
	}
	return nil
}

func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, reviewedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, reviewedBy, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("update status for leave request %s: %w", id, err)
	}
	return nil
}

func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete leave request: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate, &req.DaysCount,
		&req.Reason, &req.Status, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeEmail,
	)
	if err != nil {
		return leave.Request{}, err
	}
	return req, nil
}
