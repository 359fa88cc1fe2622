package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables and
// secondary indexes. It is idempotent and can be run multiple times safely.
//
// Timestamps are stored as INTEGER Unix milliseconds. saved_prompts carries
// no foreign key to collections; ownership is enforced by the cascading
// delete in CollectionRepo, not by the engine.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_default INTEGER NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_collections_sort_order ON collections(sort_order);`,
		`CREATE INDEX IF NOT EXISTS idx_collections_is_default ON collections(is_default);`,
		`CREATE INDEX IF NOT EXISTS idx_collections_created_at ON collections(created_at);`,
		`CREATE TABLE IF NOT EXISTS saved_prompts (
			id TEXT PRIMARY KEY,
			original_prompt TEXT NOT NULL,
			enhanced_prompt TEXT NOT NULL,
			target TEXT NOT NULL,
			collection_id TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_prompts_collection_id ON saved_prompts(collection_id);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_prompts_target ON saved_prompts(target);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_prompts_created_at ON saved_prompts(created_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
