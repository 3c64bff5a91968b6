// Package postgres connects to PostgreSQL and offers the connections
// as repository.Conn, so repositories can run their queries on them.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/trace"
)

// Migrations contains the schema of all tables used by the repositories of this module.
//
//go:embed migrations/*.sql
var Migrations embed.FS

var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrMigrationFailed  = errors.New("migration failed")
)

const defaultMaxConns = 10

// Config holds all values used to configure and connect to a postgres database.
type Config struct {
	// Migrations has to contain a folder "migrations".
	// If nil, Migrations of this package are used.
	Migrations fs.FS

	User     string
	Password string
	Database string
	SSLMode  string
	Host     string
	Port     int
	MaxConns int
}

// URL returns the connection string in URL format, without any pool configuration.
func (c Config) URL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return u.String()
}

func (c Config) maxConns() int {
	if c.MaxConns <= 0 { // prevent error: pool_max_conns too small
		return defaultMaxConns
	}

	return c.MaxConns
}

// Connect connects to a PostgreSQL database via a pgx pool.
// Every query is traced with a tracer of tracerProvider.
func Connect(ctx context.Context, conf Config, tracerProvider trace.TracerProvider) (*Handler, error) {
	config, err := pgxpool.ParseConfig(conf.URL())
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse config: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	config.MaxConns = int32(conf.maxConns()) //nolint:gosec // value is small
	config.ConnConfig.RuntimeParams["application_name"] = "catalog"
	config.ConnConfig.Tracer = newQueryTracer(tracerProvider)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: could not ping db: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return &Handler{
		PGx:    pool,
		DB:     stdlib.OpenDBFromPool(pool),
		Config: conf,
	}, nil
}

// ConnectAndMigrate connects to a PostgreSQL database and
// runs all migrations to ensure that the schema is on the latest version.
func ConnectAndMigrate(ctx context.Context, conf Config, tracerProvider trace.TracerProvider) (*Handler, error) {
	handler, err := Connect(ctx, conf, tracerProvider)
	if err != nil {
		return nil, err
	}

	if err = Migrate(handler.DB, conf); err != nil {
		_ = handler.Shutdown(ctx)

		return nil, err
	}

	return handler, nil
}

// Migrate runs all migrations of conf on db, e.g. on a connection opened with OpenSQL.
func Migrate(db *sql.DB, conf Config) error {
	migrations := conf.Migrations
	if migrations == nil {
		migrations = Migrations
	}

	return migrateUp(db, conf.Database, migrations)
}

func migrateUp(db *sql.DB, dbName string, migrations fs.FS) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("%w: could not create migration file driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{}) //nolint:exhaustruct // use default config
	if err != nil {
		return fmt.Errorf("%w: could not get database driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return fmt.Errorf("%w: could not create new migration instance: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: could not migrate up: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return nil
}

// Handler owns the connections to PostgreSQL.
type Handler struct {
	PGx    *pgxpool.Pool
	DB     *sql.DB // std lib access to the same pool, used for migrations and test fixtures.
	Config Config
}

// Conn returns the pool as a repository.Conn.
func (h *Handler) Conn() *Conn {
	return NewConn(h.PGx)
}

// Shutdown waits for and closes all connections to PostgreSQL.
func (h *Handler) Shutdown(_ context.Context) error {
	err := h.DB.Close()
	h.PGx.Close()

	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}

	return nil
}
