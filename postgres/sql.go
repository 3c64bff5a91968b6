package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // register the "postgres" driver
)

// OpenSQL connects to PostgreSQL through database/sql and the lib/pq driver.
// Use it where a pgx pool is not wanted, e.g. in tools sharing a *sql.DB.
func OpenSQL(ctx context.Context, conf Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", conf.URL())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err) //nolint:errorlint // prevent err in api
	}

	db.SetMaxOpenConns(conf.maxConns())
	db.SetMaxIdleConns(conf.maxConns() / 2) //nolint:mnd

	return db, nil
}
