package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
)

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, *database.DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &database.DB{Pool: mock}
}

func TestAttendanceCreate_Success(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	now := time.Now()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO attendance_records").
		WithArgs("emp-1", day, pgxmock.AnyArg(), pgxmock.AnyArg(), attendance.DefaultStatus, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("att-1", now, now))

	rec, err := repo.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       day,
		CheckIn:    now,
		Status:     attendance.DefaultStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, "att-1", rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The second check-in for the same employee and day must surface the
// uniqueness sentinel, not a raw driver error.
func TestAttendanceCreate_DuplicateDay(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("INSERT INTO attendance_records").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "attendance_records_employee_id_date_key",
		})

	_, err := repo.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn:    time.Now(),
		Status:     attendance.DefaultStatus,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceSetCheckOut_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("UPDATE attendance_records").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	err := repo.SetCheckOut(context.Background(), "missing", time.Now(), nil)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
