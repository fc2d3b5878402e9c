package auth

import (
	"fmt"
	"strings"

	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/records"
)

// CheckAdminExists reports whether any admin account has been created
func (s *Service) CheckAdminExists() (bool, error) {
	admins, err := s.db.GetCollection(AdminsCollection).Find(nil)
	if err != nil {
		return false, err
	}
	return len(admins) > 0, nil
}

// CreateAdmin establishes the administrative account and returns a token
// for it. The insert is keyed on the role field, so two racing bootstrap
// calls resolve to one admin and one ConflictError, never two admins.
func (s *Service) CreateAdmin(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: invalid email or password", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %v", domain.ErrInternal, err)
	}

	admin := domain.Document{
		"email":    strings.ToLower(email),
		"password": hash,
		"role":     RoleAdmin,
	}

	stored, err := s.db.GetCollection(AdminsCollection).InsertUnique(admin, "role")
	if err != nil {
		if domain.IsConflict(err) {
			return "", fmt.Errorf("%w: an admin account already exists", domain.ErrConflict)
		}
		return "", err
	}

	return s.signToken(records.Sanitize(stored), RoleAdmin)
}

// CheckLoginValid verifies an admin's credentials. Unknown email and wrong
// password both report false; the bootstrap UI only needs a yes or no.
func (s *Service) CheckLoginValid(email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, fmt.Errorf("%w: invalid email or password", domain.ErrValidation)
	}

	matches, err := s.db.GetCollection(AdminsCollection).Find(map[string]interface{}{"email": email})
	if err != nil {
		return false, err
	}
	if len(matches) == 0 {
		return false, nil
	}

	hash, _ := matches[0][records.PasswordField].(string)
	if hash == "" {
		return false, nil
	}
	return s.hasher.Verify(password, hash), nil
}

// AdminLogin verifies credentials and issues an admin token
func (s *Service) AdminLogin(email, password string) (string, error) {
	valid, err := s.CheckLoginValid(email, password)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", ErrInvalidCredentials
	}

	payload := domain.Document{"email": strings.ToLower(email)}
	return s.signToken(payload, RoleAdmin)
}

// DeleteAdmin removes the admin account with the given email
func (s *Service) DeleteAdmin(email string) (domain.Document, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}

	removed, err := s.records.Delete(map[string]interface{}{"email": email}, false, AdminsCollection)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("%w: no admin with email %s", domain.ErrNotFound, email)
	}
	return removed[0], nil
}

// Admins lists all admin accounts. Listings never include the password hash.
func (s *Service) Admins() ([]domain.Document, error) {
	return s.records.Read(nil, AdminsCollection)
}
