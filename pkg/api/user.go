package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ezbase/ezbase/pkg/auth"
	"github.com/ezbase/ezbase/pkg/domain"
)

// HandleUserCreate handles POST requests signing up a user. Extra fields
// in the body are stored on the account; the password never comes back.
func (h *Handler) HandleUserCreate(w http.ResponseWriter, r *http.Request) {
	var details domain.Document
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.auth.Signup(details)
	if err != nil {
		log.Printf("ERROR: User signup failed: %v", err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: User account created with id '%s'", record.ID())
	WriteData(w, http.StatusOK, record)
}

// HandleUserDelete handles POST requests removing a user by id
func (h *Handler) HandleUserDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.auth.DeleteUser(body.ID); err != nil {
		log.Printf("ERROR: User delete failed for id '%s': %v", body.ID, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: User account deleted with id '%s'", body.ID)
	WriteData(w, http.StatusOK, true)
}

// HandleUserLogin handles POST requests verifying user credentials. The
// two failure modes stay distinguishable: an unknown email and a wrong
// password produce different error messages.
func (h *Handler) HandleUserLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			log.Printf("WARN: Login attempt for unknown email '%s'", body.Email)
			WriteErrorMessage(w, http.StatusUnauthorized, "User does not exist")
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Printf("WARN: Invalid login for '%s'", body.Email)
			WriteErrorMessage(w, http.StatusUnauthorized, "Invalid login")
		default:
			log.Printf("ERROR: User login failed for '%s': %v", body.Email, err)
			WriteError(w, err)
		}
		return
	}

	log.Printf("INFO: User login for '%s'", body.Email)
	WriteData(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
