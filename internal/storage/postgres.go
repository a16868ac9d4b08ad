package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaushik360/counsy/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		avatar_url TEXT NOT NULL DEFAULT '',
		joined_date TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS session (
		slot INT PRIMARY KEY DEFAULT 1 CHECK (slot = 1),
		user_id TEXT NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS moods (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL,
		mood TEXT NOT NULL,
		ts TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		ai_insight TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS journals (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL,
		content TEXT NOT NULL,
		ts TEXT NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		mood TEXT NOT NULL DEFAULT '',
		is_locked BOOLEAN NOT NULL DEFAULT FALSE,
		ai_analysis JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS chats (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL,
		role TEXT NOT NULL,
		text TEXT NOT NULL,
		ts TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS streaks (
		slot INT PRIMARY KEY DEFAULT 1 CHECK (slot = 1),
		current_streak INT NOT NULL DEFAULT 0,
		last_activity_date TEXT NOT NULL DEFAULT '',
		journal_streak INT NOT NULL DEFAULT 0,
		last_journal_date TEXT NOT NULL DEFAULT '',
		mood_streak INT NOT NULL DEFAULT 0,
		last_mood_date TEXT NOT NULL DEFAULT '',
		focus_streak INT NOT NULL DEFAULT 0,
		last_focus_date TEXT NOT NULL DEFAULT '',
		achievements TEXT[] NOT NULL DEFAULT '{}'
	)`,
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	for _, stmt := range pgSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Errorf("failed to ensure schema: %v", err)
			pool.Close()
			return nil, err
		}
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- UserRepository ---

func (p *PostgresStorage) SaveUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, name, email, username, password, avatar_url, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url`,
		user.ID, user.Name, user.Email, user.Username, user.Password, user.AvatarURL, user.JoinedDate)
	if err != nil {
		p.logger.Errorf("failed to save user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, email, username, password, avatar_url, joined_date FROM users`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []internal.User{}
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.Password, &u.AvatarURL, &u.JoinedDate); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *PostgresStorage) GetSession(ctx context.Context) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT u.id, u.name, u.email, u.username, u.password, u.avatar_url, u.joined_date
		FROM session s JOIN users u ON u.id = s.user_id`)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.Password, &u.AvatarURL, &u.JoinedDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) SetSession(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO session (slot, user_id) VALUES (1, $1)
		ON CONFLICT (slot) DO UPDATE SET user_id = EXCLUDED.user_id`, user.ID)
	return err
}

func (p *PostgresStorage) ClearSession(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM session`)
	return err
}

// --- MoodRepository ---

func (p *PostgresStorage) AppendMood(ctx context.Context, entry *internal.MoodEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO moods (id, mood, ts, note, ai_insight) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Mood, entry.Timestamp, entry.Note, entry.AIInsight)
	if err != nil {
		p.logger.Errorf("failed to insert mood entry: %v", err)
	}
	return err
}

func (p *PostgresStorage) ListMoods(ctx context.Context) ([]internal.MoodEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, mood, ts, note, ai_insight FROM moods ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []internal.MoodEntry{}
	for rows.Next() {
		var m internal.MoodEntry
		if err := rows.Scan(&m.ID, &m.Mood, &m.Timestamp, &m.Note, &m.AIInsight); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// --- JournalRepository ---

func (p *PostgresStorage) AppendJournal(ctx context.Context, entry *internal.JournalEntry) error {
	var analysis []byte
	if entry.AIAnalysis != nil {
		b, err := json.Marshal(entry.AIAnalysis)
		if err != nil {
			return err
		}
		analysis = b
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO journals (id, content, ts, tags, mood, is_locked, ai_analysis)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Content, entry.Timestamp, entry.Tags, entry.Mood, entry.IsLocked, analysis)
	if err != nil {
		p.logger.Errorf("failed to insert journal entry: %v", err)
	}
	return err
}

func (p *PostgresStorage) ListJournals(ctx context.Context) ([]internal.JournalEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, content, ts, tags, mood, is_locked, ai_analysis FROM journals ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	journals := []internal.JournalEntry{}
	for rows.Next() {
		var j internal.JournalEntry
		var analysis []byte
		if err := rows.Scan(&j.ID, &j.Content, &j.Timestamp, &j.Tags, &j.Mood, &j.IsLocked, &analysis); err != nil {
			return nil, err
		}
		if len(analysis) > 0 {
			var a internal.JournalAnalysis
			if err := json.Unmarshal(analysis, &a); err == nil {
				j.AIAnalysis = &a
			}
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

// --- ChatRepository ---

func (p *PostgresStorage) AppendChatMessage(ctx context.Context, msg *internal.ChatMessage) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO chats (id, role, text, ts) VALUES ($1, $2, $3, $4)`,
		msg.ID, msg.Role, msg.Text, msg.Timestamp)
	return err
}

func (p *PostgresStorage) ListChatMessages(ctx context.Context) ([]internal.ChatMessage, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, role, text, ts FROM chats ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []internal.ChatMessage{}
	for rows.Next() {
		var m internal.ChatMessage
		if err := rows.Scan(&m.ID, &m.Role, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (p *PostgresStorage) ClearChat(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM chats`)
	return err
}

// --- StreakRepository ---

func (p *PostgresStorage) GetStreaks(ctx context.Context) (*internal.StreakData, error) {
	row := p.pool.QueryRow(ctx, `SELECT current_streak, last_activity_date, journal_streak, last_journal_date,
		mood_streak, last_mood_date, focus_streak, last_focus_date, achievements FROM streaks WHERE slot = 1`)
	var d internal.StreakData
	err := row.Scan(&d.CurrentStreak, &d.LastActivityDate, &d.JournalStreak, &d.LastJournalDate,
		&d.MoodStreak, &d.LastMoodDate, &d.FocusStreak, &d.LastFocusDate, &d.Achievements)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &internal.StreakData{}, nil
		}
		return nil, err
	}
	return &d, nil
}

func (p *PostgresStorage) SetStreaks(ctx context.Context, data *internal.StreakData) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO streaks (slot, current_streak, last_activity_date, journal_streak,
		last_journal_date, mood_streak, last_mood_date, focus_streak, last_focus_date, achievements)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slot) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			last_activity_date = EXCLUDED.last_activity_date,
			journal_streak = EXCLUDED.journal_streak,
			last_journal_date = EXCLUDED.last_journal_date,
			mood_streak = EXCLUDED.mood_streak,
			last_mood_date = EXCLUDED.last_mood_date,
			focus_streak = EXCLUDED.focus_streak,
			last_focus_date = EXCLUDED.last_focus_date,
			achievements = EXCLUDED.achievements`,
		data.CurrentStreak, data.LastActivityDate, data.JournalStreak, data.LastJournalDate,
		data.MoodStreak, data.LastMoodDate, data.FocusStreak, data.LastFocusDate, data.Achievements)
	if err != nil {
		p.logger.Errorf("failed to save streaks: %v", err)
	}
	return err
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ MoodRepository = (*PostgresStorage)(nil)
var _ JournalRepository = (*PostgresStorage)(nil)
var _ ChatRepository = (*PostgresStorage)(nil)
var _ StreakRepository = (*PostgresStorage)(nil)
