package auth

import (
	"testing"
	"time"

	"github.com/ezbase/ezbase/pkg/cryptox"
	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/records"
	"github.com/ezbase/ezbase/pkg/storage"
)

var testSecret = []byte("test-secret")

func newTestAuth(t *testing.T) (*Service, *database.Database) {
	t.Helper()
	engine := storage.NewStorageEngine(storage.WithSaveAfterWrite(false))
	t.Cleanup(engine.StopBackgroundWorkers)
	db := database.New(engine)
	hasher := cryptox.NewHasher(4, 2)
	t.Cleanup(hasher.Close)
	recordSvc := records.New(db, hasher)
	return New(db, recordSvc, hasher, testSecret, time.Hour, nil), db
}
