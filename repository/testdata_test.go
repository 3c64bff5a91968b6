package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

var (
	ctx            = context.Background()
	errStoreFailed = errors.New("store failed")
	errConnFailed  = errors.New("connection refused")
)

type (
	EntityID int64
	Entity   struct {
		ID   EntityID
		Name string
	}

	StringID     string
	StringEntity struct {
		ID   StringID
		Name string
	}

	EntityWithCustomPK struct {
		Key  string
		Name string
	}

	EntityWithUnexportedPK struct {
		key  int //nolint:unused // only found by reflection
		Name string
	}
)

func testEntity() Entity {
	return Entity{Name: gofakeit.Name()}
}

type testStore struct {
	load  func(name string, data any) error
	store func(name string, data any) error
}

func (s testStore) Load(name string, data any) error {
	return s.load(name, data)
}

func (s testStore) Store(name string, data any) error {
	return s.store(name, data)
}

func testStoreLoadFails() testStore {
	return testStore{
		load:  func(_ string, _ any) error { return errStoreFailed },
		store: func(_ string, _ any) error { return nil },
	}
}

func testStoreStoreFails() testStore {
	return testStore{
		load:  func(_ string, _ any) error { return nil },
		store: func(_ string, _ any) error { return errStoreFailed },
	}
}

func testStoreSuccessEntity(t *testing.T) testStore {
	t.Helper()

	return testStore{
		load: func(name string, data any) error {
			assert.Equal(t, "Entity.json", name)
			assert.NotNil(t, data)

			return nil
		},
		store: func(name string, data any) error {
			assert.Equal(t, "Entity.json", name)
			assert.NotNil(t, data)

			return nil
		},
	}
}

// spyConn records every query it receives, so tests can assert that no query was issued.
type spyConn struct {
	queries []string
}

func (c *spyConn) Select(_ context.Context, _ any, sql string, _ ...any) error {
	c.queries = append(c.queries, sql)

	return errConnFailed
}

func (c *spyConn) Get(_ context.Context, _ any, sql string, _ ...any) error {
	c.queries = append(c.queries, sql)

	return errConnFailed
}

func (c *spyConn) Exec(_ context.Context, sql string, _ ...any) (int64, error) {
	c.queries = append(c.queries, sql)

	return 0, errConnFailed
}
