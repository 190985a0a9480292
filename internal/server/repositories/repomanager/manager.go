package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/corpchat/internal/dbx"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/members"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/tokens"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Members(db dbx.DBTX) members.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Messages(db dbx.DBTX) messages.Repository
}
