package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezbase/ezbase/pkg/cryptox"
	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/storage"
)

func newTestService(t *testing.T) (*Service, *database.Database) {
	t.Helper()
	engine := storage.NewStorageEngine(storage.WithSaveAfterWrite(false))
	t.Cleanup(engine.StopBackgroundWorkers)
	db := database.New(engine)
	hasher := cryptox.NewHasher(4, 2)
	t.Cleanup(hasher.Close)
	return New(db, hasher), db
}

func TestCreateHashesAndStripsPassword(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.Create(domain.Document{
		"email":    "a@b.com",
		"password": "hunter2",
	}, "users")
	require.NoError(t, err)

	// The returned record never carries the password field
	_, hasPassword := created["password"]
	assert.False(t, hasPassword)
	assert.Equal(t, "a@b.com", created["email"])
	assert.NotEmpty(t, created.ID())

	// The stored record carries the bcrypt hash, not the raw secret
	stored, err := db.GetCollection("users").Get(created.ID())
	require.NoError(t, err)
	hash, _ := stored["password"].(string)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, cryptox.VerifyPassword("hunter2", hash))
}

func TestCreateWithoutPassword(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(domain.Document{"title": "note"}, "notes")
	require.NoError(t, err)
	assert.Equal(t, "note", created["title"])
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		fields domain.Document
	}{
		{name: "empty fields", fields: domain.Document{}},
		{name: "nil fields", fields: nil},
		{name: "empty password", fields: domain.Document{"email": "a@b.com", "password": ""}},
		{name: "non-string password", fields: domain.Document{"email": "a@b.com", "password": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.fields, "users")
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCreateUniqueConflict(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUnique(domain.Document{"email": "a@b.com", "password": "pw1"}, "users", "email")
	require.NoError(t, err)

	_, err = svc.CreateUnique(domain.Document{"email": "a@b.com", "password": "pw2"}, "users", "email")
	assert.True(t, domain.IsConflict(err))
}

func TestReadSanitizes(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(domain.Document{"email": "a@b.com", "password": "pw"}, "users")
	require.NoError(t, err)

	matches, err := svc.Read(map[string]interface{}{"email": "a@b.com"}, "users")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	_, hasPassword := matches[0]["password"]
	assert.False(t, hasPassword)
}

func TestReadNoMatchIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	matches, err := svc.Read(map[string]interface{}{"email": "nobody@b.com"}, "users")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeleteReturnsSanitizedRecords(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(domain.Document{"email": "a@b.com", "password": "pw"}, "users")
	require.NoError(t, err)

	removed, err := svc.Delete(map[string]interface{}{"email": "a@b.com"}, false, "users")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	_, hasPassword := removed[0]["password"]
	assert.False(t, hasPassword)

	// Already gone, so nothing more to remove and no error
	removed, err = svc.Delete(map[string]interface{}{"email": "a@b.com"}, true, "users")
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	record := domain.Document{"email": "a@b.com", "password": "hash"}

	sanitized := Sanitize(record)

	_, hasPassword := sanitized["password"]
	assert.False(t, hasPassword)
	assert.Equal(t, "hash", record["password"])
}
