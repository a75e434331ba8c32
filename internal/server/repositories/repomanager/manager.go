package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/crossclip/internal/dbx"
	"github.com/dmitrijs2005/crossclip/internal/server/repositories/items"
	"github.com/dmitrijs2005/crossclip/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/crossclip/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same service
// code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Items(db dbx.DBTX) items.Repository
}
