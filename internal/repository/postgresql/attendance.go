package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

const attendanceSelectColumns = `
	ar.id, ar.employee_id, ar.date, ar.check_in, ar.check_out, ar.status, ar.notes,
	ar.created_at, ar.updated_at, p.full_name AS employee_name`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, employee_id, date, check_in, check_out, status, notes, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.CheckIn, rec.CheckOut, rec.Status, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		// The UNIQUE (employee_id, date) constraint is what resolves
		// concurrent check-ins: the second insert loses here.
		if isUniqueViolation(err, "") {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("insert attendance record: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + attendanceSelectColumns + `
		FROM attendance_records ar
		JOIN profiles p ON ar.employee_id = p.id
		WHERE ar.id = $1
	`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.Filter) ([]attendance.Record, int64, error) {
	return r.list(ctx, filter, "ar.employee_id = $1", []interface{}{employeeID})
}

func (r *attendanceRepositoryImpl) ListAll(ctx context.Context, filter attendance.Filter) ([]attendance.Record, int64, error) {
	return r.list(ctx, filter, "1=1", nil)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, filter attendance.Filter, baseWhere string, args []interface{}) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{baseWhere}
	argIdx := len(args) + 1

	if filter.DateFrom != nil {
		if d, ok := validator.IsValidDate(*filter.DateFrom); ok {
			whereClauses = append(whereClauses, fmt.Sprintf("ar.date >= $%d", argIdx))
			args = append(args, d)
			argIdx++
		}
	}
	if filter.DateTo != nil {
		if d, ok := validator.IsValidDate(*filter.DateTo); ok {
			whereClauses = append(whereClauses, fmt.Sprintf("ar.date <= $%d", argIdx))
			args = append(args, d)
			argIdx++
		}
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN profiles p ON ar.employee_id = p.id
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendance records: %w", err)
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
		FROM attendance_records ar
		JOIN profiles p ON ar.employee_id = p.id
		WHERE %s
		ORDER BY ar.date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceSelectColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, at time.Time, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, at, notes, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("set check-out for attendance %s: %w", id, err)
	}
	return nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func scanAttendanceRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.Status, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}
