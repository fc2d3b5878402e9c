package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ezbase/ezbase/pkg/domain"
)

// Insert assigns a fresh id to the document, persists it, and returns the
// stored document including its id. The collection is created on first use.
func (se *StorageEngine) Insert(collName string, doc domain.Document) (domain.Document, error) {
	if err := validateDocument(collName, doc); err != nil {
		return nil, err
	}

	var stored domain.Document
	err := se.withCollectionWriteLock(collName, func() error {
		se.mu.Lock()
		collection := se.ensureCollection(collName)
		se.mu.Unlock()

		stored = doc.Copy()
		stored["_id"] = uuid.NewString()
		collection.Documents[stored.ID()] = stored
		se.markDirty(collName, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := se.saveAfterWriteHook(); err != nil {
		return nil, err
	}
	return stored.Copy(), nil
}

// InsertUnique inserts the document only if no existing document carries an
// equal value for keyField. The existence check and the insert run inside a
// single critical section, so two racing inserts with the same key resolve
// to exactly one success and one conflict.
func (se *StorageEngine) InsertUnique(collName string, doc domain.Document, keyField string) (domain.Document, error) {
	if err := validateDocument(collName, doc); err != nil {
		return nil, err
	}
	if keyField == "" {
		return nil, fmt.Errorf("%w: unique key field cannot be empty", domain.ErrValidation)
	}
	keyValue, hasKey := doc[keyField]
	if !hasKey {
		return nil, fmt.Errorf("%w: document is missing unique key field %q", domain.ErrValidation, keyField)
	}

	var stored domain.Document
	err := se.withCollectionWriteLock(collName, func() error {
		se.mu.Lock()
		collection := se.ensureCollection(collName)
		se.mu.Unlock()

		for _, existing := range collection.Documents {
			if existingValue, ok := existing[keyField]; ok && ValuesMatch(existingValue, keyValue) {
				return fmt.Errorf("%w: a document with %s=%v already exists in collection %s",
					domain.ErrConflict, keyField, keyValue, collName)
			}
		}

		stored = doc.Copy()
		stored["_id"] = uuid.NewString()
		collection.Documents[stored.ID()] = stored
		se.markDirty(collName, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := se.saveAfterWriteHook(); err != nil {
		return nil, err
	}
	return stored.Copy(), nil
}

// FindAll returns copies of every document matching the filter. An empty or
// nil filter matches all documents. Fields are combined with AND semantics.
func (se *StorageEngine) FindAll(collName string, filter map[string]interface{}) ([]domain.Document, error) {
	var results []domain.Document
	err := se.withCollectionReadLock(collName, func() error {
		se.mu.RLock()
		collection, err := se.getCollection(collName)
		se.mu.RUnlock()
		if err != nil {
			return err
		}

		for _, doc := range collection.Documents {
			if len(filter) == 0 || MatchesFilter(doc, filter) {
				results = append(results, doc.Copy())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetById retrieves a specific document by its id
func (se *StorageEngine) GetById(collName, docId string) (domain.Document, error) {
	var result domain.Document
	err := se.withCollectionReadLock(collName, func() error {
		se.mu.RLock()
		collection, err := se.getCollection(collName)
		se.mu.RUnlock()
		if err != nil {
			return err
		}

		doc, exists := collection.Documents[docId]
		if !exists {
			return fmt.Errorf("%w: document %s in collection %s", domain.ErrNotFound, docId, collName)
		}
		result = doc.Copy()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateById shallow-merges updates into an existing document, replacing
// only the named top-level fields. The document id is immutable.
func (se *StorageEngine) UpdateById(collName, docId string, updates domain.Document) (domain.Document, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: update document cannot be empty", domain.ErrValidation)
	}

	var updated domain.Document
	err := se.withCollectionWriteLock(collName, func() error {
		se.mu.RLock()
		collection, err := se.getCollection(collName)
		se.mu.RUnlock()
		if err != nil {
			return err
		}

		doc, exists := collection.Documents[docId]
		if !exists {
			return fmt.Errorf("%w: document %s in collection %s", domain.ErrNotFound, docId, collName)
		}

		for key, value := range updates {
			if key != "_id" {
				doc[key] = value
			}
		}
		updated = doc.Copy()
		se.markDirty(collName, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := se.saveAfterWriteHook(); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteById removes a specific document by its id and returns it
func (se *StorageEngine) DeleteById(collName, docId string) (domain.Document, error) {
	var removed domain.Document
	err := se.withCollectionWriteLock(collName, func() error {
		se.mu.RLock()
		collection, err := se.getCollection(collName)
		se.mu.RUnlock()
		if err != nil {
			return err
		}

		doc, exists := collection.Documents[docId]
		if !exists {
			return fmt.Errorf("%w: document %s in collection %s", domain.ErrNotFound, docId, collName)
		}

		removed = doc.Copy()
		delete(collection.Documents, docId)
		se.markDirty(collName, -1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := se.saveAfterWriteHook(); err != nil {
		return nil, err
	}
	return removed, nil
}

// Delete removes documents matching the filter: one match when multi is
// false, every match when true. The removed documents are returned; deleting
// nothing is not an error, the caller decides whether that matters.
func (se *StorageEngine) Delete(collName string, filter map[string]interface{}, multi bool) ([]domain.Document, error) {
	var removed []domain.Document
	err := se.withCollectionWriteLock(collName, func() error {
		se.mu.RLock()
		collection, err := se.getCollection(collName)
		se.mu.RUnlock()
		if err != nil {
			return err
		}

		for docId, doc := range collection.Documents {
			if len(filter) == 0 || MatchesFilter(doc, filter) {
				removed = append(removed, doc.Copy())
				delete(collection.Documents, docId)
				if !multi {
					break
				}
			}
		}
		if len(removed) > 0 {
			se.markDirty(collName, -int64(len(removed)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(removed) > 0 {
		if err := se.saveAfterWriteHook(); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

// validateDocument rejects malformed insert input
func validateDocument(collName string, doc domain.Document) error {
	if collName == "" {
		return fmt.Errorf("%w: collection name cannot be empty", domain.ErrValidation)
	}
	if len(doc) == 0 {
		return fmt.Errorf("%w: document cannot be empty", domain.ErrValidation)
	}
	return nil
}
