package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/storage"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	engine := storage.NewStorageEngine(storage.WithSaveAfterWrite(false))
	t.Cleanup(engine.StopBackgroundWorkers)
	return New(engine)
}

func TestGetCollectionReturnsSameHandle(t *testing.T) {
	db := newTestDB(t)

	first := db.GetCollection("users")
	second := db.GetCollection("users")

	assert.Same(t, first, second)
	assert.Equal(t, "users", first.Name())
}

func TestHandlesShareBackingState(t *testing.T) {
	db := newTestDB(t)

	writer := db.GetCollection("users")
	stored, err := writer.Insert(domain.Document{"name": "Alice"})
	require.NoError(t, err)

	reader := db.GetCollection("users")
	got, err := reader.Get(stored.ID())
	require.NoError(t, err)
	assert.Equal(t, "Alice", got["name"])
}

func TestGetCollectionCreatesBackingCollection(t *testing.T) {
	db := newTestDB(t)

	coll := db.GetCollection("settings")

	// The backing collection exists immediately, so Find on an empty
	// collection is an empty result rather than a missing-collection error
	docs, err := coll.Find(nil)
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.Contains(t, db.Engine().CollectionNames(), "settings")
}

func TestGetCollectionEmptyName(t *testing.T) {
	db := newTestDB(t)

	coll := db.GetCollection("")

	// Every operation on the handle reports the engine's validation error
	_, err := coll.Insert(domain.Document{"a": 1})
	assert.True(t, domain.IsValidation(err))
	_, err = coll.Find(nil)
	assert.True(t, domain.IsValidation(err))
	_, err = coll.Get("some-id")
	assert.True(t, domain.IsValidation(err))

	// No empty-named collection leaks into the engine
	assert.NotContains(t, db.Engine().CollectionNames(), "")
}

func TestCollectionCRUD(t *testing.T) {
	db := newTestDB(t)
	coll := db.GetCollection("notes")

	stored, err := coll.Insert(domain.Document{"title": "first", "pinned": false})
	require.NoError(t, err)

	updated, err := coll.Update(stored.ID(), domain.Document{"pinned": true})
	require.NoError(t, err)
	assert.Equal(t, true, updated["pinned"])
	assert.Equal(t, "first", updated["title"])

	removed, err := coll.DeleteById(stored.ID())
	require.NoError(t, err)
	assert.Equal(t, "first", removed["title"])

	_, err = coll.Get(stored.ID())
	assert.True(t, domain.IsNotFound(err))
}
