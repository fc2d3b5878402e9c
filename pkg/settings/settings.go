package settings

import (
	"fmt"

	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/domain"
)

// ConfigCollection holds the single configuration document
const ConfigCollection = "config"

// Service reads named configuration values from the config collection.
// This layer is read-only; the admin UI writes configuration directly
// through the record surface.
type Service struct {
	db *database.Database
}

// New creates a settings service
func New(db *database.Database) *Service {
	return &Service{db: db}
}

// GetSetting returns the named value from the configuration document.
// A missing document, a missing field, and a falsy value (false, zero,
// empty) all report NotFound: consumers treat "absent" and "disabled" as
// the same state.
func (s *Service) GetSetting(name string) (interface{}, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: setting name cannot be empty", domain.ErrValidation)
	}

	docs, err := s.db.GetCollection(ConfigCollection).Find(nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no configuration document", domain.ErrNotFound)
	}

	value, ok := docs[0][name]
	if !ok || isFalsy(value) {
		return nil, fmt.Errorf("%w: setting %q", domain.ErrNotFound, name)
	}
	return value, nil
}

// isFalsy mirrors the loose truthiness the configuration document relies on
func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case float64:
		return v == 0
	case float32:
		return v == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	default:
		return false
	}
}
