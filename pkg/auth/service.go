package auth

import (
	"fmt"
	"time"

	"github.com/ezbase/ezbase/pkg/cryptox"
	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/records"
)

const (
	// AdminsCollection stores administrator accounts
	AdminsCollection = "admins"
	// UsersCollection stores end-user accounts
	UsersCollection = "users"

	// RoleAdmin is the role claim carried by admin tokens
	RoleAdmin = "admin"
	// RoleUser is the role claim carried by user tokens
	RoleUser = "user"
)

// Distinguishable login failures. Both wrap domain.ErrAuth so the boundary
// maps them to 401, but callers and tests can tell them apart.
var (
	ErrUserNotFound       = fmt.Errorf("%w: user does not exist", domain.ErrAuth)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrAuth)
)

// Service implements the account lifecycle: admin bootstrap, credential
// verification, token issuance and external identity linking. It is built
// entirely on the record layer and the database registry.
type Service struct {
	db       *database.Database
	records  *records.Service
	hasher   *cryptox.Hasher
	secret   []byte
	tokenTTL time.Duration
	google   *GoogleProvider
}

// New creates an auth service. google may be nil when OAuth is not
// configured; the OAuth endpoints then report a validation error.
func New(db *database.Database, recordSvc *records.Service, hasher *cryptox.Hasher, secret []byte, tokenTTL time.Duration, google *GoogleProvider) *Service {
	return &Service{
		db:       db,
		records:  recordSvc,
		hasher:   hasher,
		secret:   secret,
		tokenTTL: tokenTTL,
		google:   google,
	}
}
