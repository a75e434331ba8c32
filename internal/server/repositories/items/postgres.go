package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/dbx"
	"github.com/dmitrijs2005/crossclip/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, user_id, content, storage_key, created_at, origin_device)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING inserted_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.Content, item.StorageKey, item.CreatedAt, item.OriginDevice).Scan(&item.InsertedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	query := `
		SELECT id, user_id, content, storage_key, created_at, origin_device, inserted_at
		FROM items
		WHERE user_id = $1
		ORDER BY created_at DESC, inserted_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Content, &item.StorageKey,
			&item.CreatedAt, &item.OriginDevice, &item.InsertedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes the item and returns the deleted row. An id that is not a
// UUID matches no row, so it is reported as not found without a round trip.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (*models.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `
		DELETE FROM items
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, storage_key
	`
	item := &models.Item{}
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&item.ID, &item.UserID, &item.StorageKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}
