package migrations

import (
	"database/sql"
	"io"
	"log"

	"github.com/pressly/goose/v3"
)

func setup() error {
	goose.SetBaseFS(SQLite)
	goose.SetLogger(log.New(io.Discard, "", 0))
	return goose.SetDialect("sqlite3")
}

// Up migrates the state schema to the latest version.
func Up(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Up(db, "sqlite")
}

// Down rolls back a single migration.
func Down(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Down(db, "sqlite")
}

// Version reports the applied schema version.
func Version(db *sql.DB) (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}
