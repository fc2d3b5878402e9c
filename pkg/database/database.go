package database

import (
	"log"
	"sync"

	"github.com/ezbase/ezbase/pkg/domain"
)

// Database is the process-wide registry of collection handles. It is
// constructed once at startup around a storage engine and passed by
// reference to every dependent component, so all of them observe the same
// backing state and tests can substitute an in-memory engine.
type Database struct {
	engine domain.StorageEngine

	mu      sync.Mutex
	handles map[string]*Collection
}

// New creates a registry around the given storage engine
func New(engine domain.StorageEngine) *Database {
	return &Database{
		engine:  engine,
		handles: make(map[string]*Collection),
	}
}

// GetCollection returns the single handle bound to name, creating the
// backing collection on first reference and reusing the handle thereafter
func (db *Database) GetCollection(name string) *Collection {
	db.mu.Lock()
	defer db.mu.Unlock()

	if handle, exists := db.handles[name]; exists {
		return handle
	}

	// First reference creates the backing store; CreateCollection is
	// idempotent so a snapshot-loaded collection is reused untouched. It
	// only fails on an empty name; that handle is not cached and every
	// operation on it reports the same validation error from the engine.
	if err := db.engine.CreateCollection(name); err != nil {
		log.Printf("WARN: Collection handle for invalid name: %v", err)
		return &Collection{name: name, engine: db.engine}
	}

	handle := &Collection{name: name, engine: db.engine}
	db.handles[name] = handle
	return handle
}

// Engine exposes the underlying storage engine
func (db *Database) Engine() domain.StorageEngine {
	return db.engine
}

// Collection is a handle binding a collection name to the storage engine
type Collection struct {
	name   string
	engine domain.StorageEngine
}

// Name returns the collection name
func (c *Collection) Name() string { return c.name }

// Insert stores a document and returns it including its assigned id
func (c *Collection) Insert(doc domain.Document) (domain.Document, error) {
	return c.engine.Insert(c.name, doc)
}

// InsertUnique stores a document unless keyField collides with an existing one
func (c *Collection) InsertUnique(doc domain.Document, keyField string) (domain.Document, error) {
	return c.engine.InsertUnique(c.name, doc, keyField)
}

// Find returns all documents matching the filter
func (c *Collection) Find(filter map[string]interface{}) ([]domain.Document, error) {
	return c.engine.FindAll(c.name, filter)
}

// Get retrieves a document by id
func (c *Collection) Get(docId string) (domain.Document, error) {
	return c.engine.GetById(c.name, docId)
}

// Update shallow-merges updates into the document with the given id
func (c *Collection) Update(docId string, updates domain.Document) (domain.Document, error) {
	return c.engine.UpdateById(c.name, docId, updates)
}

// DeleteById removes the document with the given id
func (c *Collection) DeleteById(docId string) (domain.Document, error) {
	return c.engine.DeleteById(c.name, docId)
}

// Delete removes one (or with multi, all) documents matching the filter
func (c *Collection) Delete(filter map[string]interface{}, multi bool) ([]domain.Document, error) {
	return c.engine.Delete(c.name, filter, multi)
}
