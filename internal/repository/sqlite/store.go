package sqlite

import (
	"database/sql"

	"github.com/creamcroissant/trackerctl/internal/repository"
)

// Store wires SQLite-backed repository implementations.
type Store struct {
	db       *sql.DB
	settings repository.SettingRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore constructs a SQLite-backed repository store.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		settings: &settingRepo{db: db},
	}
}

// Settings returns the key-value repository.
func (s *Store) Settings() repository.SettingRepository {
	return s.settings
}
