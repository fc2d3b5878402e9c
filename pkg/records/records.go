package records

import (
	"fmt"

	"github.com/ezbase/ezbase/pkg/cryptox"
	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/domain"
)

// PasswordField is the one field name the record layer treats as a secret.
// It is hashed before it is stored and stripped from every value returned.
const PasswordField = "password"

// Service provides generic record CRUD over the database registry.
// No secret-bearing field crosses this boundary unredacted.
type Service struct {
	db     *database.Database
	hasher *cryptox.Hasher
}

// New creates a record service
func New(db *database.Database, hasher *cryptox.Hasher) *Service {
	return &Service{db: db, hasher: hasher}
}

// Create inserts the fields as a new record in the named collection. A field
// literally named "password" is replaced with its bcrypt hash before the
// insert; the returned record never carries the field at all.
func (s *Service) Create(fields domain.Document, collName string) (domain.Document, error) {
	prepared, err := s.prepare(fields)
	if err != nil {
		return nil, err
	}

	record, err := s.db.GetCollection(collName).Insert(prepared)
	if err != nil {
		return nil, err
	}
	return Sanitize(record), nil
}

// CreateUnique behaves like Create but refuses the insert when another
// record carries an equal value for keyField. The check and the insert are
// one atomic step in the store.
func (s *Service) CreateUnique(fields domain.Document, collName, keyField string) (domain.Document, error) {
	prepared, err := s.prepare(fields)
	if err != nil {
		return nil, err
	}

	record, err := s.db.GetCollection(collName).InsertUnique(prepared, keyField)
	if err != nil {
		return nil, err
	}
	return Sanitize(record), nil
}

// Read returns the records matching the predicate. No match is an empty
// slice, not an error.
func (s *Service) Read(predicate map[string]interface{}, collName string) ([]domain.Document, error) {
	matches, err := s.db.GetCollection(collName).Find(predicate)
	if err != nil {
		return nil, err
	}

	sanitized := make([]domain.Document, 0, len(matches))
	for _, record := range matches {
		sanitized = append(sanitized, Sanitize(record))
	}
	return sanitized, nil
}

// Delete removes one match, or with multi every match, and returns the
// removed records. Whether "nothing deleted" is an error is the caller's
// decision.
func (s *Service) Delete(predicate map[string]interface{}, multi bool, collName string) ([]domain.Document, error) {
	removed, err := s.db.GetCollection(collName).Delete(predicate, multi)
	if err != nil {
		return nil, err
	}

	sanitized := make([]domain.Document, 0, len(removed))
	for _, record := range removed {
		sanitized = append(sanitized, Sanitize(record))
	}
	return sanitized, nil
}

// prepare validates the input and swaps a raw password for its hash
func (s *Service) prepare(fields domain.Document) (domain.Document, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: record fields cannot be empty", domain.ErrValidation)
	}

	prepared := fields.Copy()
	if raw, ok := prepared[PasswordField]; ok {
		password, ok := raw.(string)
		if !ok || password == "" {
			return nil, fmt.Errorf("%w: password must be a non-empty string", domain.ErrValidation)
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to hash password: %v", domain.ErrInternal, err)
		}
		prepared[PasswordField] = hash
	}
	return prepared, nil
}

// Sanitize returns a copy of the record without its password field
func Sanitize(record domain.Document) domain.Document {
	if record == nil {
		return nil
	}
	sanitized := record.Copy()
	delete(sanitized, PasswordField)
	return sanitized
}
