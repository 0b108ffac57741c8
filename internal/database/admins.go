package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/models"
)

var (
	ErrAdminNotFound   = errors.New("admin not found")
	ErrSessionNotFound = errors.New("session not found")
)

// CountAdmins returns the number of admin accounts
func (db *DB) CountAdmins() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count)
	return count, err
}

// CreateAdmin stores a new admin account
func (db *DB) CreateAdmin(admin *models.Admin) error {
	if db.driver == driverPostgres {
		return db.conn.QueryRow(db.rebind(
			"INSERT INTO admins (username, password_hash) VALUES (?, ?) RETURNING id, created_at"),
			admin.Username, admin.PasswordHash,
		).Scan(&admin.ID, &admin.CreatedAt)
	}

	admin.CreatedAt = time.Now()
	result, err := db.conn.Exec(
		"INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)",
		admin.Username, admin.PasswordHash, admin.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	admin.ID = id
	return nil
}

// GetAdminByUsername retrieves an admin by username
func (db *DB) GetAdminByUsername(username string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := db.conn.QueryRow(db.rebind(
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = ?"),
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// CreateSession stores a session row for an admin
func (db *DB) CreateSession(adminID int64, token string, expiresAt time.Time) error {
	if db.driver == driverPostgres {
		_, err := db.conn.Exec(db.rebind(
			"INSERT INTO admin_sessions (admin_id, session_token, expires_at) VALUES (?, ?, ?)"),
			adminID, token, expiresAt,
		)
		return err
	}

	_, err := db.conn.Exec(
		"INSERT INTO admin_sessions (admin_id, session_token, expires_at, created_at) VALUES (?, ?, ?, ?)",
		adminID, token, expiresAt, time.Now(),
	)
	return err
}

// AdminBySessionToken joins admin_sessions to admins and returns the admin
// for an unexpired token. Unknown and expired tokens are indistinguishable.
func (db *DB) AdminBySessionToken(token string) (*models.Admin, error) {
	admin := &models.Admin{}
	query := db.rebind(`SELECT a.id, a.username, a.password_hash, a.created_at
		FROM admins a
		JOIN admin_sessions s ON a.id = s.admin_id
		WHERE s.session_token = ? AND s.expires_at > ?`)
	err := db.conn.QueryRow(query, token, time.Now()).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteSession removes a session by its token
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec(db.rebind("DELETE FROM admin_sessions WHERE session_token = ?"), token)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry and reports
// how many rows were swept.
func (db *DB) DeleteExpiredSessions() (int64, error) {
	result, err := db.conn.Exec(db.rebind("DELETE FROM admin_sessions WHERE expires_at < ?"), time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
