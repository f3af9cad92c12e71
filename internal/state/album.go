package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/coverscroll/internal/db"
)

// LastAlbum is the album shown by the previous run.
type LastAlbum struct {
	Dir      string
	Title    string
	OpenedAt time.Time
}

// RecentAlbum is an entry of the opened-albums history.
type RecentAlbum struct {
	Dir        string
	Title      string
	OpenCount  int
	LastOpened time.Time
}

func getLastAlbum(conn *sql.DB) (*LastAlbum, error) {
	row := conn.QueryRow(`SELECT dir, title, opened_at FROM last_album WHERE id = 1`)

	var album LastAlbum
	var title sql.NullString
	var openedAt sql.NullInt64
	err := row.Scan(&album.Dir, &title, &openedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	album.Title = db.String(title)
	album.OpenedAt = db.Time(openedAt)
	return &album, nil
}

func saveLastAlbum(conn *sql.DB, album LastAlbum) error {
	openedAt := album.OpenedAt.Unix()
	return db.WithTx(conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO last_album (id, dir, title, opened_at)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				dir = excluded.dir,
				title = excluded.title,
				opened_at = excluded.opened_at
		`, album.Dir, album.Title, openedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO recent_albums (dir, title, open_count, last_opened)
			VALUES (?, ?, 1, ?)
			ON CONFLICT(dir) DO UPDATE SET
				title = excluded.title,
				open_count = open_count + 1,
				last_opened = excluded.last_opened
		`, album.Dir, album.Title, openedAt)
		return err
	})
}

func recentAlbums(conn *sql.DB, limit int) ([]RecentAlbum, error) {
	rows, err := conn.Query(`
		SELECT dir, title, open_count, last_opened
		FROM recent_albums
		ORDER BY last_opened DESC, dir
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []RecentAlbum
	for rows.Next() {
		var a RecentAlbum
		var title sql.NullString
		var lastOpened sql.NullInt64
		if err := rows.Scan(&a.Dir, &title, &a.OpenCount, &lastOpened); err != nil {
			return nil, err
		}
		a.Title = db.String(title)
		a.LastOpened = db.Time(lastOpened)
		albums = append(albums, a)
	}
	return albums, rows.Err()
}
