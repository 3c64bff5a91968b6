package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/go-arrower/catalog/repository"
)

// PGx is implemented by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
type PGx interface {
	pgxscan.Querier
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ repository.Conn = (*Conn)(nil)

// Conn is a repository.Conn running the queries via pgx.
// Rows are mapped onto structs by scany, using the `db` tags or the snake case field names.
// Errors of pgx are returned as they are.
type Conn struct {
	db PGx
}

func NewConn(db PGx) *Conn {
	return &Conn{db: db}
}

func (c *Conn) Select(ctx context.Context, dest any, sql string, args ...any) error {
	return pgxscan.Select(ctx, c.db, dest, sql, args...) //nolint:wrapcheck // return errors of the connection as is
}

func (c *Conn) Get(ctx context.Context, dest any, sql string, args ...any) error {
	return pgxscan.Get(ctx, c.db, dest, sql, args...) //nolint:wrapcheck // return errors of the connection as is
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := c.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err //nolint:wrapcheck // return errors of the connection as is
	}

	return tag.RowsAffected(), nil
}

var _ repository.Conn = (*SQLConn)(nil)

// SQLConn is a repository.Conn running the queries via database/sql, e.g. with the lib/pq driver.
// Rows are mapped onto structs by sqlx, using the `db` tags.
type SQLConn struct {
	db sqlx.ExtContext
}

// NewSQLConn accepts a *sqlx.DB or a *sqlx.Tx.
func NewSQLConn(db sqlx.ExtContext) *SQLConn {
	return &SQLConn{db: db}
}

func (c *SQLConn) Select(ctx context.Context, dest any, sql string, args ...any) error {
	return sqlx.SelectContext(ctx, c.db, dest, sql, args...) //nolint:wrapcheck // return errors of the connection as is
}

func (c *SQLConn) Get(ctx context.Context, dest any, sql string, args ...any) error {
	return sqlx.GetContext(ctx, c.db, dest, sql, args...) //nolint:wrapcheck // return errors of the connection as is
}

func (c *SQLConn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res, err := c.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, err //nolint:wrapcheck // return errors of the connection as is
	}

	return res.RowsAffected() //nolint:wrapcheck // return errors of the connection as is
}
