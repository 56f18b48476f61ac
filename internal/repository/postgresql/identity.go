package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/peopledesk-api/internal/domain/identity"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
)

type identityRepositoryImpl struct {
	db *database.DB
}

func NewIdentityRepository(db *database.DB) identity.Repository {
	return &identityRepositoryImpl{db: db}
}

func (r *identityRepositoryImpl) Create(ctx context.Context, id identity.Identity) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO identities (id, email, password_hash, oauth_provider, oauth_provider_id, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		id.Email, id.PasswordHash, id.OAuthProvider, id.OAuthProviderID,
	).Scan(&id.ID, &id.CreatedAt, &id.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return identity.Identity{}, identity.ErrEmailExists
		}
		return identity.Identity{}, fmt.Errorf("insert identity: %w", err)
	}

	return id, nil
}

func (r *identityRepositoryImpl) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, oauth_provider, oauth_provider_id, created_at, updated_at
		FROM identities WHERE id = $1
	`
	return scanIdentity(q.QueryRow(ctx, query, id))
}

func (r *identityRepositoryImpl) GetByEmail(ctx context.Context, email string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, oauth_provider, oauth_provider_id, created_at, updated_at
		FROM identities WHERE email = $1
	`
	return scanIdentity(q.QueryRow(ctx, query, email))
}

func (r *identityRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return identity.ErrNotFound
	}
	return nil
}

func scanIdentity(row pgx.Row) (identity.Identity, error) {
	var id identity.Identity
	err := row.Scan(
		&id.ID, &id.Email, &id.PasswordHash,
		&id.OAuthProvider, &id.OAuthProviderID,
		&id.CreatedAt, &id.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrNotFound
		}
		return identity.Identity{}, fmt.Errorf("scan identity: %w", err)
	}
	return id, nil
}
