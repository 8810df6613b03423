// Package core builds, validates and runs the relational queries behind
// every endpoint. Each list operation follows the same pipeline: rename
// short query aliases, check the query against the resource allow-list,
// resolve filter values against existing entities, run the aggregate query,
// and paginate when a limit was asked for. Expected failures travel as
// httperr values; store failures are classified once, here.
package core

import (
	"database/sql"
	"log/slog"

	"github.com/rbeckert/forum/internal/utils/databaseutils"
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
		session:     databaseutils.NewSession(dbConn),
	}
}
