package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/logging"
	"github.com/dmitrijs2005/crossclip/internal/server/blobs"
	"github.com/dmitrijs2005/crossclip/internal/server/config"
	"github.com/dmitrijs2005/crossclip/internal/server/models"
	"github.com/dmitrijs2005/crossclip/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ItemService stores and serves a user's shared items. Content larger than
// the inline limit is kept in object storage and only its key is stored in
// the database.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobs.Store
	inlineLimit int
	logger      logging.Logger
}

// NewItemService wires the item service. A nil blob store keeps all content
// inline regardless of size.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager, store blobs.Store, cfg *config.Config, logger logging.Logger) *ItemService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ItemService{
		db:          db,
		repomanager: m,
		blobs:       store,
		inlineLimit: cfg.InlineContentLimit,
		logger:      logger,
	}
}

// Add persists item for userID and returns the new id. Blank content yields
// common.ErrorEmptyContent; content over common.MaxContentBytes yields
// common.ErrorContentTooLarge.
func (s *ItemService) Add(ctx context.Context, userID string, item *models.Item) (string, error) {
	if strings.TrimSpace(item.Content) == "" {
		return "", common.ErrorEmptyContent
	}
	if len(item.Content) > common.MaxContentBytes {
		return "", common.ErrorContentTooLarge
	}

	row := &models.Item{
		ID:           uuid.NewString(),
		UserID:       userID,
		Content:      item.Content,
		CreatedAt:    item.CreatedAt,
		OriginDevice: item.OriginDevice,
	}

	if s.shouldOffload(row.Content) {
		key := blobs.NewKey(userID)
		if err := s.blobs.Put(ctx, key, []byte(row.Content)); err != nil {
			return "", fmt.Errorf("error storing content: %w", err)
		}
		row.StorageKey = key
		row.Content = ""
	}

	if err := s.repomanager.Items(s.db).Create(ctx, row); err != nil {
		if row.StorageKey != "" {
			if delErr := s.blobs.Delete(ctx, row.StorageKey); delErr != nil {
				s.logger.Warn(ctx, "orphaned blob", "key", row.StorageKey, "error", delErr)
			}
		}
		return "", fmt.Errorf("error saving item: %w", err)
	}

	return row.ID, nil
}

// List returns userID's items newest first with offloaded content filled
// in. Items whose blob has vanished are left out.
func (s *ItemService) List(ctx context.Context, userID string) ([]*models.Item, error) {
	rows, err := s.repomanager.Items(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	result := make([]*models.Item, 0, len(rows))
	for _, row := range rows {
		if row.Offloaded() {
			if s.blobs == nil {
				return nil, common.ErrorInternal
			}
			data, err := s.blobs.Get(ctx, row.StorageKey)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					s.logger.Warn(ctx, "item blob missing", "item_id", row.ID, "key", row.StorageKey)
					continue
				}
				return nil, fmt.Errorf("error loading content: %w", err)
			}
			row.Content = string(data)
		}
		result = append(result, row)
	}

	return result, nil
}

// Delete removes item id owned by userID. Deleting an item that does not
// exist, or belongs to someone else, succeeds without effect. Ids that are
// not UUIDs can never name an item.
func (s *ItemService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Debug(ctx, "delete of malformed id ignored", "item_id", id)
		return nil
	}

	row, err := s.repomanager.Items(s.db).Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error deleting item: %w", err)
	}

	if row.Offloaded() && s.blobs != nil {
		if err := s.blobs.Delete(ctx, row.StorageKey); err != nil {
			s.logger.Warn(ctx, "orphaned blob", "key", row.StorageKey, "error", err)
		}
	}
	return nil
}

func (s *ItemService) shouldOffload(content string) bool {
	return s.blobs != nil && s.inlineLimit > 0 && len(content) > s.inlineLimit
}
