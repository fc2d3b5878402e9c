package storage

import (
	"sync"
	"time"

	"github.com/ezbase/ezbase/pkg/domain"
)

// CollectionLock provides per-collection concurrency control
type CollectionLock struct {
	mu sync.RWMutex
}

// CollectionInfo tracks bookkeeping state for a collection. Version counts
// writes so a snapshot can tell whether a collection changed after it was
// copied. All fields are guarded by the engine's mu.
type CollectionInfo struct {
	Name          string
	DocumentCount int64
	LastModified  time.Time
	Dirty         bool
	Version       int64
}

// StorageEngine is an in-memory document store with optional single-file
// persistence. Collections are always resident; writes mark the owning
// collection dirty so save workers only touch what changed.
type StorageEngine struct {
	mu          sync.RWMutex
	collections map[string]*domain.Collection
	info        map[string]*CollectionInfo

	// Per-collection locks for better concurrency
	collectionLocks map[string]*CollectionLock
	locksMu         sync.RWMutex

	// Configuration
	dataFile       string
	saveAfterWrite bool
	backgroundSave bool
	saveInterval   time.Duration

	// Background workers
	backgroundWg sync.WaitGroup
	stopChan     chan struct{}

	// Serializes snapshot writes so concurrent post-write saves don't
	// interleave on the data file
	saveMu sync.Mutex
}

// NewStorageEngine creates a new storage engine
func NewStorageEngine(options ...StorageOption) *StorageEngine {
	engine := &StorageEngine{
		collections:     make(map[string]*domain.Collection),
		info:            make(map[string]*CollectionInfo),
		collectionLocks: make(map[string]*CollectionLock),
		saveAfterWrite:  true,
		saveInterval:    5 * time.Minute,
		stopChan:        make(chan struct{}),
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// getOrCreateCollectionLock gets or creates a lock for a collection
func (se *StorageEngine) getOrCreateCollectionLock(collName string) *CollectionLock {
	se.locksMu.RLock()
	if lock, exists := se.collectionLocks[collName]; exists {
		se.locksMu.RUnlock()
		return lock
	}
	se.locksMu.RUnlock()

	se.locksMu.Lock()
	defer se.locksMu.Unlock()

	// Double-check in case another goroutine created it
	if lock, exists := se.collectionLocks[collName]; exists {
		return lock
	}

	lock := &CollectionLock{}
	se.collectionLocks[collName] = lock
	return lock
}

// withCollectionReadLock executes fn with a read lock on the collection
func (se *StorageEngine) withCollectionReadLock(collName string, fn func() error) error {
	lock := se.getOrCreateCollectionLock(collName)
	lock.mu.RLock()
	defer lock.mu.RUnlock()
	return fn()
}

// withCollectionWriteLock executes fn with a write lock on the collection
func (se *StorageEngine) withCollectionWriteLock(collName string, fn func() error) error {
	lock := se.getOrCreateCollectionLock(collName)
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return fn()
}

// markDirty flags a collection as modified. CollectionInfo fields are only
// ever written under se.mu held for writing; the save workers clear them
// under the same lock.
func (se *StorageEngine) markDirty(collName string, countDelta int64) {
	se.mu.Lock()
	defer se.mu.Unlock()
	info, exists := se.info[collName]
	if !exists {
		return
	}
	info.Dirty = true
	info.DocumentCount += countDelta
	info.LastModified = time.Now()
	info.Version++
}

// saveAfterWriteHook persists the snapshot after a successful write when
// save-after-write is enabled and a data file is configured
func (se *StorageEngine) saveAfterWriteHook() error {
	if !se.saveAfterWrite || se.dataFile == "" {
		return nil
	}
	return se.SaveToFile(se.dataFile)
}

// IsSaveAfterWriteEnabled returns whether save-after-write is enabled
func (se *StorageEngine) IsSaveAfterWriteEnabled() bool {
	return se.saveAfterWrite
}
