// Package state remembers which albums were opened, in a SQLite file under
// the XDG data directory.
package state

import (
	"database/sql"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/coverscroll/internal/db"
)

// Interface is the part of Manager the CLI depends on.
type Interface interface {
	SaveLastAlbum(album LastAlbum)
	GetLastAlbum() (*LastAlbum, error)
	RecentAlbums(limit int) ([]RecentAlbum, error)
	Close() error
}

var _ Interface = (*Manager)(nil)

// saveDelay lets a burst of saves collapse into one write.
const saveDelay = 500 * time.Millisecond

// Manager is the SQLite backed Interface.
type Manager struct {
	conn *sql.DB

	mu      sync.Mutex
	timer   *time.Timer
	pending *LastAlbum
}

// Open opens coverscroll/coverscroll.db under the XDG data directory.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join("coverscroll", "coverscroll.db"))
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt opens the state database at path, creating it if needed.
func OpenAt(path string) (*Manager, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &Manager{conn: conn}, nil
}

// GetLastAlbum returns the album recorded last, or nil before the first save.
func (m *Manager) GetLastAlbum() (*LastAlbum, error) {
	return getLastAlbum(m.conn)
}

// RecentAlbums returns up to limit albums, most recently opened first.
func (m *Manager) RecentAlbums(limit int) ([]RecentAlbum, error) {
	return recentAlbums(m.conn, limit)
}

// SaveLastAlbum records album in the background. A zero OpenedAt is
// stamped with the current time. Close writes a save still waiting.
func (m *Manager) SaveLastAlbum(album LastAlbum) {
	if album.OpenedAt.IsZero() {
		album.OpenedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &album
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(saveDelay, m.flush)
}

// Close writes any pending save and closes the database.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	m.flush()
	return m.conn.Close()
}

func (m *Manager) flush() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	if pending == nil {
		return
	}
	if err := saveLastAlbum(m.conn, *pending); err != nil {
		slog.Error("save last album", "dir", pending.Dir, "err", err)
	}
}
