package domain

// StorageEngine defines the interface for document store operations
// This is the core business interface that implementations must conform to
type StorageEngine interface {
	CreateCollection(collName string) error
	DeleteCollection(collName string, deleteAllData bool) error
	CollectionNames() []string
	Insert(collName string, doc Document) (Document, error)
	InsertUnique(collName string, doc Document, keyField string) (Document, error)
	FindAll(collName string, filter map[string]interface{}) ([]Document, error)
	GetById(collName, docId string) (Document, error)
	UpdateById(collName, docId string, updates Document) (Document, error)
	DeleteById(collName, docId string) (Document, error)
	Delete(collName string, filter map[string]interface{}, multi bool) ([]Document, error)
	LoadFromFile(filename string) error
	SaveToFile(filename string) error
	StartBackgroundWorkers()
	StopBackgroundWorkers()
}
