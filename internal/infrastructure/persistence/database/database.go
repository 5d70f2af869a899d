// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
}

// NewConnection establishes a new SQLite connection at the given path,
// creating the parent directory when needed.
func NewConnection(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// NewConnectionWithLogger establishes a new SQLite connection with logging.
func NewConnectionWithLogger(path string, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()
	logger.Database().Debug("Creating new database connection", "path", path)

	db, err := NewConnection(path)
	if err != nil {
		logger.Database().Error("Failed to open database connection", "error", err.Error(), "path", path)
		return nil, err
	}

	logger.Database().Info("Database connection established", "path", path, "duration", time.Since(start))
	return db, nil
}
