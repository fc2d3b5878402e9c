package auth

import (
	"fmt"

	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/records"
)

// Signup creates a user account. The password is hashed before it is
// persisted and absent from the returned record. Email is the uniqueness
// key; a taken email yields a ConflictError.
func (s *Service) Signup(details domain.Document) (domain.Document, error) {
	email, _ := details["email"].(string)
	password, _ := details[records.PasswordField].(string)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrValidation)
	}

	return s.records.CreateUnique(details, UsersCollection, "email")
}

// Login verifies a user's credentials and returns a token plus the
// sanitized account. An unknown email and a wrong password fail
// differently: ErrUserNotFound vs ErrInvalidCredentials.
func (s *Service) Login(email, password string) (string, domain.Document, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: invalid email or password", domain.ErrValidation)
	}

	matches, err := s.db.GetCollection(UsersCollection).Find(map[string]interface{}{"email": email})
	if err != nil {
		return "", nil, err
	}
	if len(matches) == 0 {
		return "", nil, ErrUserNotFound
	}

	account := matches[0]
	hash, _ := account[records.PasswordField].(string)
	if hash == "" || !s.hasher.Verify(password, hash) {
		return "", nil, ErrInvalidCredentials
	}

	sanitized := records.Sanitize(account)
	token, err := s.signToken(sanitized, RoleUser)
	if err != nil {
		return "", nil, err
	}
	return token, sanitized, nil
}

// DeleteUser removes a user account by id and returns the sanitized record
func (s *Service) DeleteUser(id string) (domain.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: invalid id", domain.ErrValidation)
	}

	removed, err := s.records.Delete(map[string]interface{}{"_id": id}, false, UsersCollection)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("%w: no user with id %s", domain.ErrNotFound, id)
	}
	return removed[0], nil
}
