package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/ezbase/ezbase/pkg/domain"
)

// CreateCollection ensures a collection with the given name exists.
// Creating a collection that already exists is a no-op.
func (se *StorageEngine) CreateCollection(collName string) error {
	if collName == "" {
		return fmt.Errorf("%w: collection name cannot be empty", domain.ErrValidation)
	}

	se.mu.Lock()
	defer se.mu.Unlock()

	if _, exists := se.collections[collName]; exists {
		return nil
	}

	se.collections[collName] = domain.NewCollection(collName)
	se.info[collName] = &CollectionInfo{
		Name:         collName,
		LastModified: time.Now(),
		Dirty:        true,
	}
	return nil
}

// DeleteCollection removes a collection. deleteAllData must be set when the
// collection still holds documents; without it a non-empty collection is
// refused so a typo cannot silently drop data.
func (se *StorageEngine) DeleteCollection(collName string, deleteAllData bool) error {
	if collName == "" {
		return fmt.Errorf("%w: collection name cannot be empty", domain.ErrValidation)
	}

	err := se.withCollectionWriteLock(collName, func() error {
		se.mu.Lock()
		defer se.mu.Unlock()

		collection, exists := se.collections[collName]
		if !exists {
			return fmt.Errorf("%w: collection %s does not exist", domain.ErrNotFound, collName)
		}
		if len(collection.Documents) > 0 && !deleteAllData {
			return fmt.Errorf("%w: collection %s is not empty, set delete_all_data to drop it", domain.ErrValidation, collName)
		}

		delete(se.collections, collName)
		delete(se.info, collName)
		return nil
	})
	if err != nil {
		return err
	}

	return se.saveAfterWriteHook()
}

// CollectionNames returns the names of all collections, sorted
func (se *StorageEngine) CollectionNames() []string {
	se.mu.RLock()
	defer se.mu.RUnlock()

	names := make([]string, 0, len(se.collections))
	for name := range se.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getCollection returns the collection, or a not-found error.
// Caller must hold se.mu.
func (se *StorageEngine) getCollection(collName string) (*domain.Collection, error) {
	if collName == "" {
		return nil, fmt.Errorf("%w: collection name cannot be empty", domain.ErrValidation)
	}
	collection, exists := se.collections[collName]
	if !exists {
		return nil, fmt.Errorf("%w: collection %s does not exist", domain.ErrNotFound, collName)
	}
	return collection, nil
}

// ensureCollection returns the collection, creating it if absent.
// Caller must hold se.mu for writing.
func (se *StorageEngine) ensureCollection(collName string) *domain.Collection {
	collection, exists := se.collections[collName]
	if !exists {
		collection = domain.NewCollection(collName)
		se.collections[collName] = collection
		se.info[collName] = &CollectionInfo{
			Name:         collName,
			LastModified: time.Now(),
			Dirty:        true,
		}
	}
	return collection
}
