package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/advisor"
	"github.com/kaushik360/counsy/internal/storage"
)

type MoodCheckInRequest struct {
	Mood string `json:"mood" validate:"required"`
	Note string `json:"note" validate:"omitempty,max=500"`
}

func ValidateMoodCheckInRequest(req *MoodCheckInRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if !internal.ValidMood(req.Mood) {
		return ErrUnknownMood
	}
	return nil
}

var ErrUnknownMood = &internal.AppError{Code: 400, Message: "unknown mood label"}

// CheckInMood asks the advisor for a one-line tip, appends the entry and
// feeds the streak engine. The advisor call cannot fail, only degrade.
func CheckInMood(ctx context.Context, moods storage.MoodRepository, streaks storage.StreakRepository, adv advisor.Advisor, req *MoodCheckInRequest) (*internal.MoodEntry, *internal.StreakData, error) {
	entry := &internal.MoodEntry{
		ID:        uuid.NewString(),
		Mood:      req.Mood,
		Timestamp: time.Now().Format(time.RFC3339),
		Note:      req.Note,
		AIInsight: adv.MoodTip(ctx, req.Mood),
	}

	if err := moods.AppendMood(ctx, entry); err != nil {
		return nil, nil, err
	}
	data, err := RecordActivity(ctx, streaks, internal.ActivityMood, Today())
	if err != nil {
		return nil, nil, err
	}
	return entry, data, nil
}

type JournalSaveRequest struct {
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"dive,required"`
	Mood     string   `json:"mood" validate:"omitempty"`
	IsLocked bool     `json:"isLocked"`
}

func ValidateJournalSaveRequest(req *JournalSaveRequest) error {
	return validate.Struct(req)
}

// SaveJournal obtains the structured AI reflection, appends the entry and
// feeds the streak engine.
func SaveJournal(ctx context.Context, journals storage.JournalRepository, streaks storage.StreakRepository, adv advisor.Advisor, req *JournalSaveRequest) (*internal.JournalEntry, *internal.StreakData, error) {
	analysis := adv.AnalyzeJournal(ctx, req.Content)
	entry := &internal.JournalEntry{
		ID:         uuid.NewString(),
		Content:    req.Content,
		Timestamp:  time.Now().Format(time.RFC3339),
		Tags:       req.Tags,
		Mood:       req.Mood,
		IsLocked:   req.IsLocked,
		AIAnalysis: &analysis,
	}

	if err := journals.AppendJournal(ctx, entry); err != nil {
		return nil, nil, err
	}
	data, err := RecordActivity(ctx, streaks, internal.ActivityJournal, Today())
	if err != nil {
		return nil, nil, err
	}
	return entry, data, nil
}

type ChatSendRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func ValidateChatSendRequest(req *ChatSendRequest) error {
	return validate.Struct(req)
}

// SendChatMessage appends the user's message, obtains the counselor reply
// over the prior history and appends it. Chat does not feed the streak
// engine.
func SendChatMessage(ctx context.Context, chats storage.ChatRepository, adv advisor.Advisor, user *internal.User, req *ChatSendRequest) (*internal.ChatMessage, *internal.ChatMessage, error) {
	history, err := chats.ListChatMessages(ctx)
	if err != nil {
		return nil, nil, err
	}

	userMsg := &internal.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "user",
		Text:      req.Text,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := chats.AppendChatMessage(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	reply := adv.Converse(ctx, history, req.Text, user.Name)

	modelMsg := &internal.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "model",
		Text:      reply,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := chats.AppendChatMessage(ctx, modelMsg); err != nil {
		return nil, nil, err
	}
	return userMsg, modelMsg, nil
}

// CompleteFocusSession records one finished focus interval. The countdown
// itself lives in the client; only completion reaches the engine.
func CompleteFocusSession(ctx context.Context, streaks storage.StreakRepository) (*internal.StreakData, error) {
	return RecordActivity(ctx, streaks, internal.ActivityFocus, Today())
}
