package postgresql

import (
	"context"
	"fmt"

	"github.com/peopledesk/peopledesk-api/internal/domain/activity"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
)

// Activity logs are append-only: this repository intentionally has no
// update or delete method.
type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.Repository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, e activity.Entry) (activity.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_logs (id, user_id, action, entity_type, entity_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.UserID, e.Action, e.EntityType, e.EntityID, e.Description,
	).Scan(&e.CreatedAt)
	if err != nil {
		return activity.Entry{}, fmt.Errorf("insert activity entry: %w", err)
	}

	return e, nil
}

func (r *activityRepositoryImpl) List(ctx context.Context, limit int) ([]activity.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := q.Query(ctx, `
		SELECT id, user_id, action, entity_type, entity_id, description, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity entries: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
