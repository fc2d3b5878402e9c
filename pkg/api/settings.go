package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleGetSetting handles GET requests reading a named configuration value
func (h *Handler) HandleGetSetting(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	value, err := h.settings.GetSetting(name)
	if err != nil {
		log.Printf("ERROR: Setting '%s' lookup failed: %v", name, err)
		WriteError(w, err)
		return
	}

	WriteData(w, http.StatusOK, value)
}
