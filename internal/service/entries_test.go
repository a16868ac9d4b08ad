package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/advisor"
	"github.com/kaushik360/counsy/internal/storage"
)

func newFileStore(t *testing.T) *storage.FileStorage {
	s, err := storage.NewFileStorage(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCheckInMood(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()
	adv := advisor.NewLocalAdvisor()

	entry, data, err := CheckInMood(ctx, store, store, adv, &MoodCheckInRequest{Mood: internal.MoodAnxious, Note: "exam week"})
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.AIInsight)
	assert.Equal(t, internal.MoodAnxious, entry.Mood)
	assert.Equal(t, 1, data.MoodStreak)
	assert.Equal(t, 1, data.CurrentStreak)

	moods, err := store.ListMoods(ctx)
	assert.NoError(t, err)
	assert.Len(t, moods, 1)
}

func TestCheckInMood_NewestFirst(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()
	adv := advisor.NewLocalAdvisor()

	first, _, err := CheckInMood(ctx, store, store, adv, &MoodCheckInRequest{Mood: internal.MoodHappy})
	assert.NoError(t, err)
	second, _, err := CheckInMood(ctx, store, store, adv, &MoodCheckInRequest{Mood: internal.MoodSleepy})
	assert.NoError(t, err)

	moods, err := store.ListMoods(ctx)
	assert.NoError(t, err)
	assert.Len(t, moods, 2)
	assert.Equal(t, second.ID, moods[0].ID)
	assert.Equal(t, first.ID, moods[1].ID)
}

func TestValidateMoodCheckInRequest_RejectsUnknownLabel(t *testing.T) {
	err := ValidateMoodCheckInRequest(&MoodCheckInRequest{Mood: "Grumpy"})
	assert.ErrorIs(t, err, ErrUnknownMood)
}

func TestSaveJournal(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()
	adv := advisor.NewLocalAdvisor()

	entry, data, err := SaveJournal(ctx, store, store, adv, &JournalSaveRequest{
		Content:  "Long day, but I got through the reading list.",
		Tags:     []string{"study", "evening"},
		Mood:     internal.MoodNeutral,
		IsLocked: true,
	})
	assert.NoError(t, err)
	assert.NotNil(t, entry.AIAnalysis)
	assert.NotEmpty(t, entry.AIAnalysis.MoodSummary)
	assert.NotEmpty(t, entry.AIAnalysis.Recommendations)
	assert.True(t, entry.IsLocked)
	assert.Equal(t, 1, data.JournalStreak)

	journals, err := store.ListJournals(ctx)
	assert.NoError(t, err)
	assert.Len(t, journals, 1)
}

func TestSendChatMessage_DoesNotTouchStreaks(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()
	adv := advisor.NewLocalAdvisor()
	user := &internal.User{ID: "u1", Name: "Alex"}

	userMsg, modelMsg, err := SendChatMessage(ctx, store, adv, user, &ChatSendRequest{Text: "hello there"})
	assert.NoError(t, err)
	assert.Equal(t, "user", userMsg.Role)
	assert.Equal(t, "model", modelMsg.Role)
	assert.Contains(t, modelMsg.Text, "Alex")

	msgs, err := store.ListChatMessages(ctx)
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, userMsg.ID, msgs[0].ID)
	assert.Equal(t, modelMsg.ID, msgs[1].ID)

	data, err := store.GetStreaks(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, data.CurrentStreak)
	assert.Empty(t, data.Achievements)
}

func TestCompleteFocusSession(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	data, err := CompleteFocusSession(ctx, store)
	assert.NoError(t, err)
	assert.Equal(t, 1, data.FocusStreak)
	assert.Equal(t, 1, data.CurrentStreak)
	assert.True(t, data.HasAchievement(internal.AchievementCalmStarter))
}
