package postgresql

import (
	"context"
	"fmt"

	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.Repository {
	return &roleRepositoryImpl{db: db}
}

// RoleOf is the trusted-path role lookup. It is a plain read against
// user_roles with no policy evaluation of its own, so predicates may call
// through it without recursion. Admin wins when several rows exist.
func (r *roleRepositoryImpl) RoleOf(ctx context.Context, userID string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT role FROM user_roles
		WHERE user_id = $1
		ORDER BY CASE role WHEN 'admin' THEN 0 ELSE 1 END
		LIMIT 1
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return role.RoleNone, fmt.Errorf("query role: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return role.RoleNone, rows.Err()
	}
	var res role.Role
	if err := rows.Scan(&res); err != nil {
		return role.RoleNone, fmt.Errorf("scan role: %w", err)
	}
	return res, rows.Err()
}

func (r *roleRepositoryImpl) Assign(ctx context.Context, userID string, ro role.Role) (role.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`

	a := role.Assignment{UserID: userID, Role: ro}
	err := q.QueryRow(ctx, query, userID, ro).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return role.Assignment{}, role.ErrAssignmentExists
		}
		return role.Assignment{}, fmt.Errorf("insert role assignment: %w", err)
	}
	return a, nil
}

func (r *roleRepositoryImpl) Revoke(ctx context.Context, userID string, ro role.Role) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, ro)
	if err != nil {
		return fmt.Errorf("delete role assignment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return role.ErrAssignmentMissing
	}
	return nil
}

func (r *roleRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]role.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, user_id, role, created_at FROM user_roles WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query role assignments: %w", err)
	}
	defer rows.Close()

	var assignments []role.Assignment
	for rows.Next() {
		var a role.Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Role, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
