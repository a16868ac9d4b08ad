package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/storage"
)

// DateLayout is the calendar-date form used for streak bookkeeping. Streaks
// are counted against local wall-clock dates, truncated to the day; the
// string comparison semantics are deliberate.
const DateLayout = "2006-01-02"

// Today returns the current local calendar date.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NewStreak applies the streak transition rule:
//
//	no previous date        -> 1
//	same day (idempotent)   -> prev
//	previous day            -> prev + 1
//	gap of two or more days -> 1
func NewStreak(prev int, lastDate, today string) int {
	if lastDate == "" {
		return 1
	}
	if lastDate == today {
		return prev
	}
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		return 1
	}
	if lastDate == t.AddDate(0, 0, -1).Format(DateLayout) {
		return prev + 1
	}
	return 1
}

// RecordActivity advances the global stream and the stream matching the
// activity type, grants any newly earned achievements and persists the
// result. It must be called exactly once per completed activity; repeated
// calls within the same day are harmless. Chat never calls it.
func RecordActivity(ctx context.Context, streaks storage.StreakRepository, activity, today string) (*internal.StreakData, error) {
	data, err := streaks.GetStreaks(ctx)
	if err != nil {
		return nil, err
	}

	data.CurrentStreak = NewStreak(data.CurrentStreak, data.LastActivityDate, today)
	data.LastActivityDate = today

	switch activity {
	case internal.ActivityJournal:
		data.JournalStreak = NewStreak(data.JournalStreak, data.LastJournalDate, today)
		data.LastJournalDate = today
	case internal.ActivityMood:
		data.MoodStreak = NewStreak(data.MoodStreak, data.LastMoodDate, today)
		data.LastMoodDate = today
	case internal.ActivityFocus:
		data.FocusStreak = NewStreak(data.FocusStreak, data.LastFocusDate, today)
		data.LastFocusDate = today
	default:
		return nil, fmt.Errorf("unknown activity type %q", activity)
	}

	// Achievements are monotonic: a later gap resets the counters but
	// never revokes a grant.
	data.GrantAchievement(internal.AchievementCalmStarter)
	if data.CurrentStreak >= 7 {
		data.GrantAchievement(internal.AchievementMindful7Day)
	}
	if data.CurrentStreak >= 30 {
		data.GrantAchievement(internal.AchievementConsistencyChamp)
	}
	if data.FocusStreak >= 5 {
		data.GrantAchievement(internal.AchievementFocusMaster)
	}

	if err := streaks.SetStreaks(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}
