//go:build integration

package tests

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-testfixtures/testfixtures/v3"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/catalog/postgres"
)

//nolint:gochecknoglobals // the postgres container is a singleton per test binary.
var (
	muPostgres        = sync.Mutex{}
	singletonPostgres *PostgresDocker

	defaultPGConf = postgres.Config{ //nolint:exhaustruct // migrations default to the embedded ones
		User:     "catalog",
		Password: "secret",
		Database: "catalog_test",
		Host:     "localhost",
		MaxConns: 10, //nolint:mnd
	}

	defaultPGRunOptions = &dockertest.RunOptions{ //nolint:exhaustruct // only set required configuration
		Name:       "catalog-testing-postgres",
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=" + defaultPGConf.User,
			"POSTGRES_PASSWORD=" + defaultPGConf.Password,
			"POSTGRES_DB=" + defaultPGConf.Database,
			"listen_addresses = '*'",
		},
		Cmd: []string{"-c", "max_connections=1000"},
	}
)

// PostgresDocker is a PostgreSQL server running in docker.
type PostgresDocker struct {
	pg        *postgres.Handler
	container *Container
}

// GetPostgresDocker returns a connected and migrated PostgresDocker.
// Subsequent calls return the same instance, so parallel tests share one container.
// In case of an issue, it panics.
func GetPostgresDocker() *PostgresDocker {
	muPostgres.Lock()
	defer muPostgres.Unlock()

	if singletonPostgres != nil {
		return singletonPostgres
	}

	var pgHandler *postgres.Handler

	container, err := StartContainer(defaultPGRunOptions, func(resource *dockertest.Resource) func() error {
		conf := defaultPGConf
		conf.Port, _ = strconv.Atoi(resource.GetPort("5432/tcp"))

		return func() error {
			handler, err := postgres.ConnectAndMigrate(context.Background(), conf, noop.NewTracerProvider())
			if err != nil {
				return err //nolint:wrapcheck // dockertest retries on any error
			}

			pgHandler = handler

			return nil
		}
	})
	if err != nil {
		panic(err)
	}

	singletonPostgres = &PostgresDocker{pg: pgHandler, container: container}

	return singletonPostgres
}

// NewTestDatabase creates a new database, connects to it, and applies all migrations.
// Afterwards, the fixture files are loaded, see go-testfixtures for their format.
// Use it in parallel tests, so every test works on its own data.
// In case of an issue, it panics.
func (pd *PostgresDocker) NewTestDatabase(fixtureFiles ...string) *postgres.Handler {
	dbName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	_, err := pd.pg.PGx.Exec(context.Background(), fmt.Sprintf("CREATE DATABASE %s;", dbName))
	if err != nil {
		panic(err)
	}

	conf := pd.pg.Config
	conf.Database = dbName

	handler, err := postgres.ConnectAndMigrate(context.Background(), conf, noop.NewTracerProvider())
	if err != nil {
		panic(err)
	}

	if len(fixtureFiles) == 0 {
		return handler
	}

	fixtures, err := testfixtures.New(
		testfixtures.Database(handler.DB),
		testfixtures.Dialect("postgres"),
		testfixtures.Files(fixtureFiles...),
		testfixtures.DangerousSkipTestDatabaseCheck(),
		testfixtures.ResetSequencesTo(1000), //nolint:mnd // ids created in tests never collide with fixtures
	)
	if err != nil {
		panic(err)
	}

	if err = fixtures.Load(); err != nil {
		panic(err)
	}

	return handler
}

// Handler returns the connection to the default database of the container.
func (pd *PostgresDocker) Handler() *postgres.Handler {
	return pd.pg
}

// Cleanup closes the connection, stops, and removes the container.
// Call it in TestMain after m.Run, as deferred calls do not run on os.Exit.
// In case of an issue, it panics.
func (pd *PostgresDocker) Cleanup() {
	if err := pd.pg.Shutdown(context.Background()); err != nil {
		panic(err)
	}

	if err := pd.container.Cleanup(); err != nil {
		panic(err)
	}
}
