package storage

import (
	"io"

	"github.com/kaushik360/counsy/internal"
)

// Repositories bundles every collection the app persists. A single backing
// store implements all of them.
type Repositories struct {
	Users    UserRepository
	Moods    MoodRepository
	Journals JournalRepository
	Chats    ChatRepository
	Streaks  StreakRepository

	closer io.Closer
}

// Close flushes pending writes and stops background workers.
func (r *Repositories) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func NewFileRepositories(dataDir string, logger internal.Logger) (*Repositories, error) {
	s, err := NewFileStorage(dataDir, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Users: s, Moods: s, Journals: s, Chats: s, Streaks: s, closer: s}, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (*Repositories, error) {
	s, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Users: s, Moods: s, Journals: s, Chats: s, Streaks: s, closer: s}, nil
}
