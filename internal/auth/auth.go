package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/database"
	"github.com/JobDeck-io/jobdeck/internal/models"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token
	SessionCookieName = "admin_session"

	sessionTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// Service verifies admin credentials and manages session tokens. The store
// handle is injected; no package-level state.
type Service struct {
	db           *database.DB
	cookieSecure bool
}

// New creates the auth service
func New(db *database.DB, cookieSecure bool) *Service {
	return &Service{db: db, cookieSecure: cookieSecure}
}

// Login verifies credentials, bootstrapping the admin account on first run:
// when no admin row exists yet, the supplied credentials become the admin of
// record. Once an admin exists a failed verification is just a failure; the
// account is never replaced.
func (s *Service) Login(username, password string) (*models.Admin, error) {
	count, err := s.db.CountAdmins()
	if err != nil {
		return nil, err
	}

	if count == 0 {
		admin, err := models.NewAdmin(username, password)
		if err != nil {
			return nil, err
		}
		if err := s.db.CreateAdmin(admin); err != nil {
			return nil, err
		}
		log.Printf("[AUTH] no admin account found, bootstrapped %q", username)
		return admin, nil
	}

	return s.Verify(username, password)
}

// Verify checks a username/password pair against the stored bcrypt hash. An
// unknown username and a wrong password both return ErrInvalidCredentials.
func (s *Service) Verify(username, password string) (*models.Admin, error) {
	admin, err := s.db.GetAdminByUsername(username)
	if err == database.ErrAdminNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !admin.ValidatePassword(password) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// CreateSession generates a random session token with a 7-day expiry and
// stores it. Multiple sessions per admin may be live at once.
func (s *Service) CreateSession(adminID int64) (string, time.Time, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, err
	}
	token := hex.EncodeToString(tokenBytes)

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.db.CreateSession(adminID, token, expiresAt); err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// AdminFromSession resolves a session token to its admin. Absent, unknown
// and expired tokens all return ErrSessionNotFound.
func (s *Service) AdminFromSession(token string) (*models.Admin, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	admin, err := s.db.AdminBySessionToken(token)
	if err == database.ErrSessionNotFound {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// Logout deletes the session row for a token. A missing row is not an error;
// the cookie is cleared by the caller regardless.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.db.DeleteSession(token)
}

// CleanupExpiredSessions sweeps session rows past their expiry
func (s *Service) CleanupExpiredSessions() error {
	swept, err := s.db.DeleteExpiredSessions()
	if err != nil {
		return err
	}
	if swept > 0 {
		log.Printf("[AUTH] swept %d expired sessions", swept)
	}
	return nil
}

// SetSessionCookie mirrors the session token in an HTTP-only cookie
func (s *Service) SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}

// ClearSessionCookie expires the session cookie
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
}

// SessionTokenFromRequest extracts the session token from the request cookie
func SessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
