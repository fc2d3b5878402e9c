package domain

// Document represents a schemaless record stored in a collection
type Document map[string]interface{}

// Collection represents a named set of documents keyed by id
type Collection struct {
	Name      string              `json:"name"`
	Documents map[string]Document `json:"documents"`
}

// NewCollection creates a new empty collection
func NewCollection(name string) *Collection {
	return &Collection{
		Name:      name,
		Documents: make(map[string]Document),
	}
}

// ID returns the document id, or "" when the document has none yet
func (d Document) ID() string {
	id, _ := d["_id"].(string)
	return id
}

// Copy returns a shallow copy of the document. Top-level fields are
// independent, nested values are shared.
func (d Document) Copy() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
