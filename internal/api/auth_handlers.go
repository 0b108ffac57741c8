package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/auth"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if creds.Username == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, err := api.auth.Login(creds.Username, creds.Password)
	if err == auth.ErrInvalidCredentials {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, expiresAt, err := api.auth.CreateSession(admin.ID)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	api.auth.SetSessionCookie(w, token, expiresAt)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"admin":   adminPayload{ID: admin.ID, Username: admin.Username},
	})
}

func (api *Api) MeHandler(w http.ResponseWriter, r *http.Request) {
	admin, err := api.auth.AdminFromSession(auth.SessionTokenFromRequest(r))
	if err == auth.ErrSessionNotFound {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err != nil {
		log.Printf("Auth check error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"admin": adminPayload{ID: admin.ID, Username: admin.Username},
	})
}

func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.auth.Logout(auth.SessionTokenFromRequest(r)); err != nil {
		log.Printf("Error deleting session: %v", err)
	}

	// Cookie is cleared regardless of whether a session row existed
	api.auth.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (api *Api) CreateTokenHandler(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req struct {
		Name    string `json:"name"`
		TTLDays int    `json:"ttl_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TTLDays <= 0 {
		req.TTLDays = 365
	}

	token, err := api.tokens.GenerateToken(admin, req.Name, time.Duration(req.TTLDays)*24*time.Hour)
	if err != nil {
		log.Printf("Error creating token: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"token": token})
}
