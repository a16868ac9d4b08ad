package storage

import (
	"context"
	"errors"

	"github.com/kaushik360/counsy/internal"
)

// ErrNotFound signals an absent record (e.g. no session user). Callers
// distinguish absence from failure with errors.Is.
var ErrNotFound = errors.New("storage: not found")

type UserRepository interface {
	// SaveUser appends the user, or overwrites the entry with the same ID.
	SaveUser(ctx context.Context, user *internal.User) error
	ListUsers(ctx context.Context) ([]internal.User, error)

	// Session is the single "current user" record.
	GetSession(ctx context.Context) (*internal.User, error)
	SetSession(ctx context.Context, user *internal.User) error
	ClearSession(ctx context.Context) error
}

type MoodRepository interface {
	AppendMood(ctx context.Context, entry *internal.MoodEntry) error
	ListMoods(ctx context.Context) ([]internal.MoodEntry, error) // newest first
}

type JournalRepository interface {
	AppendJournal(ctx context.Context, entry *internal.JournalEntry) error
	ListJournals(ctx context.Context) ([]internal.JournalEntry, error) // newest first
}

type ChatRepository interface {
	AppendChatMessage(ctx context.Context, msg *internal.ChatMessage) error
	ListChatMessages(ctx context.Context) ([]internal.ChatMessage, error) // chronological
	ClearChat(ctx context.Context) error
}

type StreakRepository interface {
	// GetStreaks never fails on absence; a fresh install yields the zero value.
	GetStreaks(ctx context.Context) (*internal.StreakData, error)
	SetStreaks(ctx context.Context, data *internal.StreakData) error
}
