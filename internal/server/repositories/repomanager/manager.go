package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/records"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

// RepositoryManager builds repositories over any DBTX so that services can
// bind them either to the pool or to a running transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Records(db dbx.DBTX) records.Repository
	Tokens(db dbx.DBTX) trapdoor.Index
	Sessions(db dbx.DBTX) sessions.Repository
}
