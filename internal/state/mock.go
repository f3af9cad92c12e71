package state

// Mock is an in-memory Interface for tests. Saves are recorded and become
// the last album immediately.
type Mock struct {
	Last   *LastAlbum
	Recent []RecentAlbum
	Saved  []LastAlbum
	Closed bool
}

var _ Interface = (*Mock)(nil)

// NewMock returns an empty Mock.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveLastAlbum(album LastAlbum) {
	m.Saved = append(m.Saved, album)
	m.Last = &album
}

func (m *Mock) GetLastAlbum() (*LastAlbum, error) {
	return m.Last, nil
}

func (m *Mock) RecentAlbums(limit int) ([]RecentAlbum, error) {
	return m.Recent[:min(limit, len(m.Recent))], nil
}

func (m *Mock) Close() error {
	m.Closed = true
	return nil
}
