package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ezbase/ezbase/pkg/auth"
)

// adminCookieName is the session artifact held by the admin front end.
// Tokens themselves are stateless; the cookie only carries one.
const adminCookieName = "admin"

type adminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAdminCreate handles POST requests to bootstrap the admin account
func (h *Handler) HandleAdminCreate(w http.ResponseWriter, r *http.Request) {
	var body adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.CreateAdmin(body.Email, body.Password)
	if err != nil {
		log.Printf("ERROR: Admin create failed for '%s': %v", body.Email, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Admin account created for '%s'", body.Email)
	setAdminCookie(w, token)
	WriteData(w, http.StatusOK, token)
}

// HandleAdminExists handles GET requests checking whether an admin exists
func (h *Handler) HandleAdminExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.auth.CheckAdminExists()
	if err != nil {
		log.Printf("ERROR: Admin existence check failed: %v", err)
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, exists)
}

// HandleAdmins handles GET requests listing all admin accounts
func (h *Handler) HandleAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.auth.Admins()
	if err != nil {
		log.Printf("ERROR: Admin listing failed: %v", err)
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, admins)
}

// HandleAdminDelete handles DELETE requests removing an admin by email
func (h *Handler) HandleAdminDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.auth.DeleteAdmin(body.Email); err != nil {
		log.Printf("ERROR: Admin delete failed for '%s': %v", body.Email, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Admin account deleted for '%s'", body.Email)
	WriteData(w, http.StatusOK, true)
}

// HandleAdminLogin handles POST requests verifying admin credentials.
// Invalid credentials respond with data false rather than an error; the
// bootstrap UI treats the two outcomes as one prompt.
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var body adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.AdminLogin(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("WARN: Admin login rejected for '%s'", body.Email)
			WriteData(w, http.StatusOK, false)
			return
		}
		log.Printf("ERROR: Admin login failed for '%s': %v", body.Email, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Admin login for '%s'", body.Email)
	setAdminCookie(w, token)
	WriteData(w, http.StatusOK, token)
}

// HandleAdminLogout handles POST requests clearing the admin cookie. The
// token stays valid until natural expiry; there is no server-side
// revocation.
func (h *Handler) HandleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	WriteData(w, http.StatusOK, "Admin logged out")
}

func setAdminCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   60 * 60 * 24 * 7,
	})
}
