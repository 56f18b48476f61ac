package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

const profileColumns = `id, email, full_name, department, position, phone, hire_date, avatar_url, created_at, updated_at`

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.Repository {
	return &profileRepositoryImpl{db: db}
}

func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	// id comes from the identity row, never generated here.
	query := `
		INSERT INTO profiles (id, email, full_name, department, position, phone, hire_date, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.Email, p.FullName, p.Department, p.Position, p.Phone, p.HireDate, p.AvatarURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return profile.Profile{}, profile.ErrEmailExists
		}
		return profile.Profile{}, fmt.Errorf("insert profile: %w", err)
	}

	return p, nil
}

func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)
	return scanProfile(q.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *profileRepositoryImpl) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)
	return scanProfile(q.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email))
}

func (r *profileRepositoryImpl) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil && *filter.Department != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int64
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM profiles WHERE "+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(
		`SELECT %s FROM profiles WHERE %s ORDER BY full_name LIMIT $%d OFFSET $%d`,
		profileColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}

	return profiles, total, rows.Err()
}

func (r *profileRepositoryImpl) Update(ctx context.Context, req profile.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Department != nil {
		updates = append(updates, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *req.Department)
		argIdx++
	}
	if req.Position != nil {
		updates = append(updates, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *req.Position)
		argIdx++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *req.Phone)
		argIdx++
	}
	if req.HireDate != nil {
		hireDate, _ := validator.IsValidDate(*req.HireDate)
		updates = append(updates, fmt.Sprintf("hire_date = $%d", argIdx))
		args = append(args, hireDate)
		argIdx++
	}
	if req.AvatarURL != nil {
		updates = append(updates, fmt.Sprintf("avatar_url = $%d", argIdx))
		args = append(args, *req.AvatarURL)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for profile update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)
	sql := "UPDATE profiles SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.ErrProfileNotFound
		}
		return fmt.Errorf("update profile %s: %w", req.ID, err)
	}
	return nil
}

func (r *profileRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.Department, &p.Position,
		&p.Phone, &p.HireDate, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	return p, nil
}

func scanProfileRow(rows pgx.Rows) (profile.Profile, error) {
	var p profile.Profile
	err := rows.Scan(
		&p.ID, &p.Email, &p.FullName, &p.Department, &p.Position,
		&p.Phone, &p.HireDate, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("scan profile row: %w", err)
	}
	return p, nil
}
