package repomanager

import (
	"context"
	"database/sql"

	"github.com/profilehub/profilehub/internal/dbx"
	"github.com/profilehub/profilehub/internal/server/repositories/refreshtokens"
	"github.com/profilehub/profilehub/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run them against either the pooled connection or an open
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
