package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/config"
	_ "github.com/lib/pq" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// DB wraps the SQL connection together with the active dialect. It is passed
// explicitly to every consumer rather than held as package state.
type DB struct {
	conn   *sql.DB
	driver string
}

// Open initializes the database connection and schema
func Open(cfg *config.Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch cfg.DatabaseType {
	case driverPostgres:
		conn, err = openPostgreSQL(cfg)
	case driverSQLite, "":
		conn, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	driver := cfg.DatabaseType
	if driver == "" {
		driver = driverSQLite
	}

	db := &DB{conn: conn, driver: driver}
	if err := db.runMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Printf("db: connected (%s)", driver)
	return db, nil
}

// openPostgreSQL initializes a PostgreSQL connection
func openPostgreSQL(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %v", err)
	}

	if cfg.DatabaseMaxConns > 0 {
		conn.SetMaxOpenConns(cfg.DatabaseMaxConns)
	}
	if cfg.DatabaseMaxIdle > 0 {
		conn.SetMaxIdleConns(cfg.DatabaseMaxIdle)
	}
	if cfg.DatabaseConnMaxLifetime != "" && cfg.DatabaseConnMaxLifetime != "0" {
		if duration, err := time.ParseDuration(cfg.DatabaseConnMaxLifetime); err == nil {
			conn.SetConnMaxLifetime(duration)
		}
	}

	return conn, nil
}

// openSQLite initializes an SQLite connection
func openSQLite(cfg *config.Config) (*sql.DB, error) {
	dataDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on", cfg.DatabasePath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %v", err)
	}

	return conn, nil
}

// Close closes the underlying connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Driver returns the active dialect name
func (db *DB) Driver() string {
	return db.driver
}

// rebind converts ? placeholders to $n for the postgres dialect. Queries are
// written with ? throughout; sqlite uses them as-is.
func (db *DB) rebind(query string) string {
	if db.driver != driverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// like returns the case-insensitive substring operator for the dialect.
// SQLite LIKE is case-insensitive for ASCII by default.
func (db *DB) like() string {
	if db.driver == driverPostgres {
		return "ILIKE"
	}
	return "LIKE"
}
