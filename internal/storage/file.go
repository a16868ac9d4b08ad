package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kaushik360/counsy/internal"
)

// Collection names. Each maps to <name>.json under the data directory.
const (
	colSession  = "session"
	colUsers    = "users"
	colMoods    = "moods"
	colJournals = "journals"
	colChats    = "chats"
	colStreaks  = "streaks"
)

// FileStorage keeps every collection in memory and persists each one to its
// own JSON file. Writes are debounced through per-collection save workers;
// files are replaced atomically (tmp, fsync, rename). Missing or corrupt
// files load as empty collections.
type FileStorage struct {
	mu       sync.RWMutex
	users    []*internal.User
	session  *internal.User
	moods    []*internal.MoodEntry    // newest first
	journals []*internal.JournalEntry // newest first
	chats    []*internal.ChatMessage  // chronological
	streaks  internal.StreakData

	dataDir      string
	saveChans    map[string]chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	workers      sync.WaitGroup
	logger       internal.Logger
}

func NewFileStorage(dataDir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStorage{
		dataDir:      dataDir,
		saveChans:    make(map[string]chan struct{}),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	s.loadCollection(colUsers, &s.users)
	s.loadCollection(colSession, &s.session)
	s.loadCollection(colMoods, &s.moods)
	s.loadCollection(colJournals, &s.journals)
	s.loadCollection(colChats, &s.chats)
	s.loadCollection(colStreaks, &s.streaks)

	for _, name := range []string{colSession, colUsers, colMoods, colJournals, colChats, colStreaks} {
		ch := make(chan struct{}, 1)
		s.saveChans[name] = ch
		s.workers.Add(1)
		go s.saveWorker(name, ch)
	}

	return s, nil
}

func (s *FileStorage) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// loadCollection reads one collection file into v. Absence and corruption
// both leave v untouched: the system favors a graceful reset over a
// surfaced failure.
func (s *FileStorage) loadCollection(name string, v interface{}) {
	file, err := os.Open(s.path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnf("storage: cannot open %s: %v", name, err)
		}
		return
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		s.logger.Warnf("storage: %s is corrupt, starting empty: %v", name, err)
	}
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveCollection(name string) error {
	s.mu.RLock()
	var data interface{}
	switch name {
	case colUsers:
		data = s.users
	case colSession:
		data = s.session
	case colMoods:
		data = s.moods
	case colJournals:
		data = s.journals
	case colChats:
		data = s.chats
	case colStreaks:
		data = s.streaks
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.path(name), data)
}

// saveWorker batches saves for one collection to avoid a disk write per
// mutation.
func (s *FileStorage) saveWorker(name string, ch chan struct{}) {
	defer s.workers.Done()
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-ch:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveCollection(name); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalSave(name string) {
	select {
	case s.saveChans[name] <- struct{}{}:
	default:
	}
}

// Close stops the workers and flushes every collection synchronously. The
// workers are joined first so the flush cannot race an in-flight write to
// the same temp file.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	s.workers.Wait()
	for _, name := range []string{colSession, colUsers, colMoods, colJournals, colChats, colStreaks} {
		if err := s.saveCollection(name); err != nil {
			return err
		}
	}
	return nil
}

// --- UserRepository ---

func (s *FileStorage) SaveUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		s.users = append(s.users, user)
	}
	s.signalSave(colUsers)
	return nil
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]internal.User, len(s.users))
	for i, u := range s.users {
		users[i] = *u
	}
	return users, nil
}

func (s *FileStorage) GetSession(ctx context.Context) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, ErrNotFound
	}
	u := *s.session
	return &u, nil
}

func (s *FileStorage) SetSession(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = user
	s.signalSave(colSession)
	return nil
}

func (s *FileStorage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.signalSave(colSession)
	return nil
}

// --- MoodRepository ---

func (s *FileStorage) AppendMood(ctx context.Context, entry *internal.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moods = append([]*internal.MoodEntry{entry}, s.moods...)
	s.signalSave(colMoods)
	return nil
}

func (s *FileStorage) ListMoods(ctx context.Context) ([]internal.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moods := make([]internal.MoodEntry, len(s.moods))
	for i, m := range s.moods {
		moods[i] = *m
	}
	return moods, nil
}

// --- JournalRepository ---

func (s *FileStorage) AppendJournal(ctx context.Context, entry *internal.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journals = append([]*internal.JournalEntry{entry}, s.journals...)
	s.signalSave(colJournals)
	return nil
}

func (s *FileStorage) ListJournals(ctx context.Context) ([]internal.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	journals := make([]internal.JournalEntry, len(s.journals))
	for i, j := range s.journals {
		journals[i] = *j
	}
	return journals, nil
}

// --- ChatRepository ---

func (s *FileStorage) AppendChatMessage(ctx context.Context, msg *internal.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, msg)
	s.signalSave(colChats)
	return nil
}

func (s *FileStorage) ListChatMessages(ctx context.Context) ([]internal.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]internal.ChatMessage, len(s.chats))
	for i, m := range s.chats {
		msgs[i] = *m
	}
	return msgs, nil
}

func (s *FileStorage) ClearChat(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = nil
	s.signalSave(colChats)
	return nil
}

// --- StreakRepository ---

func (s *FileStorage) GetStreaks(ctx context.Context) (*internal.StreakData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := s.streaks
	data.Achievements = append([]string(nil), s.streaks.Achievements...)
	return &data, nil
}

func (s *FileStorage) SetStreaks(ctx context.Context, data *internal.StreakData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks = *data
	s.signalSave(colStreaks)
	return nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ MoodRepository = (*FileStorage)(nil)
var _ JournalRepository = (*FileStorage)(nil)
var _ ChatRepository = (*FileStorage)(nil)
var _ StreakRepository = (*FileStorage)(nil)
