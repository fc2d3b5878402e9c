package api

import (
	"github.com/ezbase/ezbase/pkg/auth"
	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/records"
	"github.com/ezbase/ezbase/pkg/settings"
)

// Handler provides the HTTP handlers for the auth, record and settings
// surfaces
type Handler struct {
	auth     *auth.Service
	records  *records.Service
	settings *settings.Service
	db       *database.Database
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(authSvc *auth.Service, recordSvc *records.Service, settingsSvc *settings.Service, db *database.Database) *Handler {
	return &Handler{
		auth:     authSvc,
		records:  recordSvc,
		settings: settingsSvc,
		db:       db,
	}
}
