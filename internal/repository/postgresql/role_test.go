package postgresql

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/domain/role"
)

func TestRoleOf_AdminPrecedence(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewRoleRepository(db)

	// The query orders admin first, so a multi-role user resolves to admin.
	mock.ExpectQuery("SELECT role FROM user_roles").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("admin"))

	r, err := repo.RoleOf(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, role.RoleAdmin, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleOf_NoAssignment(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery("SELECT role FROM user_roles").
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"role"}))

	r, err := repo.RoleOf(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, role.RoleNone, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}
