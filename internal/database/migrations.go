package database

import (
	"fmt"
	"log"
)

// runMigrations creates the schema if it doesn't exist
func (db *DB) runMigrations() error {
	var queries []string

	if db.driver == driverPostgres {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS jobs (
				id SERIAL PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				company VARCHAR(255) NOT NULL,
				company_logo TEXT,
				location VARCHAR(255),
				job_type VARCHAR(100),
				salary_range VARCHAR(100),
				description TEXT NOT NULL,
				requirements TEXT,
				form_link TEXT,
				portal VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS admins (
				id SERIAL PRIMARY KEY,
				username VARCHAR(255) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS admin_sessions (
				id SERIAL PRIMARY KEY,
				admin_id INTEGER NOT NULL REFERENCES admins(id) ON DELETE CASCADE,
				session_token VARCHAR(255) UNIQUE NOT NULL,
				expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_job_type ON jobs(job_type)`,
			`CREATE INDEX IF NOT EXISTS idx_admins_username ON admins(username)`,
			`CREATE INDEX IF NOT EXISTS idx_admin_sessions_token ON admin_sessions(session_token)`,
			`CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires_at ON admin_sessions(expires_at)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				company TEXT NOT NULL,
				company_logo TEXT,
				location TEXT,
				job_type TEXT,
				salary_range TEXT,
				description TEXT NOT NULL,
				requirements TEXT,
				form_link TEXT,
				portal TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS admins (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS admin_sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				admin_id INTEGER NOT NULL,
				session_token TEXT UNIQUE NOT NULL,
				expires_at DATETIME NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (admin_id) REFERENCES admins(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_job_type ON jobs(job_type)`,
			`CREATE INDEX IF NOT EXISTS idx_admin_sessions_token ON admin_sessions(session_token)`,
			`CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires_at ON admin_sessions(expires_at)`,
		}
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %v", err)
		}
	}

	log.Printf("db: schema up to date")
	return nil
}
