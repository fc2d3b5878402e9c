package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezbase/ezbase/pkg/domain"
)

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "roundtrip"+FileExtension)

	engine := NewStorageEngine(WithSaveAfterWrite(false))
	defer engine.StopBackgroundWorkers()

	alice, err := engine.Insert("users", domain.Document{"name": "Alice", "age": 30})
	require.NoError(t, err)
	_, err = engine.Insert("users", domain.Document{"name": "Bob", "age": 25})
	require.NoError(t, err)
	_, err = engine.Insert("config", domain.Document{"theme": "dark"})
	require.NoError(t, err)

	require.NoError(t, engine.SaveToFile(dataFile))

	restored := NewStorageEngine(WithSaveAfterWrite(false))
	defer restored.StopBackgroundWorkers()
	require.NoError(t, restored.LoadFromFile(dataFile))

	assert.Equal(t, []string{"config", "users"}, restored.CollectionNames())

	users, err := restored.FindAll("users", nil)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	got, err := restored.GetById("users", alice.ID())
	require.NoError(t, err)
	assert.Equal(t, "Alice", got["name"])
	assert.EqualValues(t, 30, got["age"])
}

func TestLoadFromMissingFile(t *testing.T) {
	engine := NewStorageEngine(WithSaveAfterWrite(false))
	defer engine.StopBackgroundWorkers()

	// A missing data file means a fresh, empty store
	err := engine.LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist"+FileExtension))
	assert.NoError(t, err)
	assert.Empty(t, engine.CollectionNames())
}

func TestLoadFromCorruptFile(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "corrupt"+FileExtension)
	require.NoError(t, os.WriteFile(dataFile, []byte("XXXX not a valid snapshot"), 0o644))

	engine := NewStorageEngine(WithSaveAfterWrite(false))
	defer engine.StopBackgroundWorkers()

	err := engine.LoadFromFile(dataFile)
	assert.Error(t, err)
}

func TestSaveAfterWritePersistsEachChange(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "autosave"+FileExtension)

	engine := NewStorageEngine(WithDataFile(dataFile))
	defer engine.StopBackgroundWorkers()

	stored, err := engine.Insert("users", domain.Document{"name": "Alice"})
	require.NoError(t, err)

	// The write-through save means a fresh engine sees the document
	// without an explicit SaveToFile
	restored := NewStorageEngine(WithSaveAfterWrite(false))
	defer restored.StopBackgroundWorkers()
	require.NoError(t, restored.LoadFromFile(dataFile))

	got, err := restored.GetById("users", stored.ID())
	require.NoError(t, err)
	assert.Equal(t, "Alice", got["name"])
}

func TestConcurrentWritesWithWriteThroughSave(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "concurrent"+FileExtension)

	engine := NewStorageEngine(WithDataFile(dataFile))
	defer engine.StopBackgroundWorkers()

	// Dirty bookkeeping is shared between writers and the post-write save;
	// interleaved inserts across collections must not race on it
	const perCollection = 8
	var wg sync.WaitGroup
	for _, collName := range []string{"users", "admins"} {
		for i := 0; i < perCollection; i++ {
			wg.Add(1)
			go func(coll string, n int) {
				defer wg.Done()
				_, err := engine.Insert(coll, domain.Document{"n": n})
				assert.NoError(t, err)
			}(collName, i)
		}
	}
	wg.Wait()

	for _, collName := range []string{"users", "admins"} {
		docs, err := engine.FindAll(collName, nil)
		require.NoError(t, err)
		assert.Len(t, docs, perCollection)
	}

	restored := NewStorageEngine(WithSaveAfterWrite(false))
	defer restored.StopBackgroundWorkers()
	require.NoError(t, restored.LoadFromFile(dataFile))
	docs, err := restored.FindAll("users", nil)
	require.NoError(t, err)
	assert.Len(t, docs, perCollection)
}

func TestClearDirtyFlagsKeepsChangedCollections(t *testing.T) {
	engine := NewStorageEngine(WithSaveAfterWrite(false))
	defer engine.StopBackgroundWorkers()

	_, err := engine.Insert("users", domain.Document{"name": "Alice"})
	require.NoError(t, err)

	engine.mu.RLock()
	copied := engine.info["users"].Version
	engine.mu.RUnlock()

	// A write after the snapshot copy bumps the version; clearing against
	// the stale version must leave the collection dirty for the next save
	_, err = engine.Insert("users", domain.Document{"name": "Bob"})
	require.NoError(t, err)

	engine.clearDirtyFlags(map[string]int64{"users": copied})
	engine.mu.RLock()
	assert.True(t, engine.info["users"].Dirty)
	current := engine.info["users"].Version
	engine.mu.RUnlock()

	engine.clearDirtyFlags(map[string]int64{"users": current})
	engine.mu.RLock()
	assert.False(t, engine.info["users"].Dirty)
	engine.mu.RUnlock()
}

func TestHeaderRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf))

	header, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, MagicBytes, string(header.Magic[:]))
	assert.Equal(t, uint8(FormatVersion), header.Version)
}

func TestReadHeaderRejectsWrongMagic(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte{'N', 'O', 'P', 'E', 1, 0, 0, 0}))
	assert.Error(t, err)
}
