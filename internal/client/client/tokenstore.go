package client

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/crossclip/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/dbx"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// MetadataTokenStore keeps the token pair in the local metadata table.
type MetadataTokenStore struct {
	db *sql.DB
}

func NewMetadataTokenStore(db *sql.DB) *MetadataTokenStore {
	return &MetadataTokenStore{db: db}
}

func (s *MetadataTokenStore) Tokens(ctx context.Context) (string, string, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	access, err := repo.Get(ctx, accessTokenKey)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", "", err
	}
	refresh, err := repo.Get(ctx, refreshTokenKey)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", "", err
	}
	return access, refresh, nil
}

// SaveTokens replaces both tokens atomically.
func (s *MetadataTokenStore) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, accessTokenKey, accessToken); err != nil {
			return err
		}
		return repo.Set(ctx, refreshTokenKey, refreshToken)
	})
}

func (s *MetadataTokenStore) ClearTokens(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, accessTokenKey, refreshTokenKey)
}
