package api

import (
	"log"
	"net/http"
)

// HandleGoogleOAuth handles POST requests returning the provider
// authorization URL the front end redirects the browser to
func (h *Handler) HandleGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.auth.GoogleAuthURL("")
	if err != nil {
		log.Printf("ERROR: Google OAuth URL request failed: %v", err)
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, authURL)
}

// HandleOAuthRedirect handles the provider's callback: it exchanges the
// authorization code, links the identity to a local account, and redirects
// the browser to the front end with the issued token in the query string
func (h *Handler) HandleOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	redirectURL, err := h.auth.OAuthLogin(r.Context(), code)
	if err != nil {
		log.Printf("ERROR: OAuth exchange failed: %v", err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: OAuth exchange succeeded, redirecting to front end")
	http.Redirect(w, r, redirectURL, http.StatusMovedPermanently)
}
