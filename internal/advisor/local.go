package advisor

import (
	"context"
	"strings"

	"github.com/kaushik360/counsy/internal"
)

// LocalAdvisor is the deterministic offline implementation. It is also the
// fallback target for the remote advisor, so its responses must hold up as
// plausible counselor output on their own.
type LocalAdvisor struct{}

func NewLocalAdvisor() *LocalAdvisor {
	return &LocalAdvisor{}
}

var moodTips = map[string]string{
	internal.MoodEcstatic: "Ride this wave of energy, and jot down what sparked it so you can find it again. (Offline Tip)",
	internal.MoodHappy:    "Savor this feeling for a moment before moving on to the next task. (Offline Tip)",
	internal.MoodNeutral:  "A steady day is a fine day. A short walk might add a little color to it. (Offline Tip)",
	internal.MoodSad:      "Be gentle with yourself today; feelings pass, and reaching out to someone helps. (Offline Tip)",
	internal.MoodAnxious:  "Try a slow breath: in for four counts, out for six. Your body listens. (Offline Tip)",
	internal.MoodFocused:  "Protect this focus: silence one distraction and keep going. (Offline Tip)",
	internal.MoodSleepy:   "A glass of water and five minutes of daylight can reset a drowsy afternoon. (Offline Tip)",
}

const defaultMoodTip = "Remember to take care of yourself today. (Offline Tip)"

func (a *LocalAdvisor) MoodTip(_ context.Context, mood string) string {
	if tip, ok := moodTips[mood]; ok {
		return tip
	}
	return defaultMoodTip
}

func (a *LocalAdvisor) Converse(_ context.Context, _ []internal.ChatMessage, message, displayName string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return "Hello " + displayName + "! I'm running in Demo Mode right now (connection issue), but I'm still here to listen. How are you feeling?"
	case strings.Contains(lower, "sad") || strings.Contains(lower, "depressed") || strings.Contains(lower, "lonely"):
		return "I'm sorry you're feeling this way. Remember, this feeling is temporary, and you are stronger than you know. (Demo Response)"
	case strings.Contains(lower, "anxious") || strings.Contains(lower, "stress"):
		return "Take a deep breath with me. Inhale... Exhale. Focus on this moment. You've got this. (Demo Response)"
	case strings.Contains(lower, "thank"):
		return "You're very welcome! I'm glad I could help."
	}
	return "I hear you, and I understand. I'm operating in offline mode currently, but I want you to know your feelings are valid. Tell me more?"
}

func (a *LocalAdvisor) AnalyzeJournal(_ context.Context, _ string) internal.JournalAnalysis {
	return internal.JournalAnalysis{
		MoodSummary:         "Reflective (Demo Analysis - Connection Failed)",
		ProductivityInsight: "Writing helps clear the mind.",
		Recommendations:     []string{"Take a deep breath.", "Stay consistent."},
	}
}

var _ Advisor = (*LocalAdvisor)(nil)
