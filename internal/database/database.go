// Package database owns the download history database kept alongside
// the output files.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DBControl wraps the opened history database.
type DBControl struct {
	DB *sql.DB
}

// InitDB opens (or creates) the history database at the given path and
// ensures its tables exist.
func InitDB(dbPath string) (*DBControl, error) {
	var dc DBControl

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", dbPath, err)
	}
	dc.DB = db

	if err := dc.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return &dc, nil
}

// Close closes the underlying database handle.
func (dc *DBControl) Close() error {
	return dc.DB.Close()
}

// initTables initializes the SQL tables.
func (dc *DBControl) initTables() error {
	tx, err := dc.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := initDownloadsTable(tx); err != nil {
		return err
	}

	return tx.Commit()
}
