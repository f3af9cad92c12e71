package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS last_album (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			dir TEXT NOT NULL,
			title TEXT,
			opened_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recent_albums (
			dir TEXT PRIMARY KEY,
			title TEXT,
			open_count INTEGER NOT NULL DEFAULT 0,
			last_opened INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_last_opened ON recent_albums(last_opened);
	`)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
