package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Admin is the privileged account permitted to manage job postings. Normal
// operation has exactly one admin row.
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // never exposed in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// NewAdmin creates an admin with a bcrypt-hashed password
func NewAdmin(username, password string) (*Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Admin{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}, nil
}

// ValidatePassword checks if the provided password matches the stored hash
func (a *Admin) ValidatePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// Session is an opaque server-side session token mirrored in a client cookie
type Session struct {
	ID        int64     `json:"id" db:"id"`
	AdminID   int64     `json:"admin_id" db:"admin_id"`
	Token     string    `json:"-" db:"session_token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}
