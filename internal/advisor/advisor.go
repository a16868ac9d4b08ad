package advisor

import (
	"context"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/config"
)

// Advisor produces the supplementary AI text attached to chat, mood and
// journal flows. Every method is total: it always returns a value of the
// expected shape and never surfaces a remote failure to the caller.
type Advisor interface {
	Converse(ctx context.Context, history []internal.ChatMessage, message, displayName string) string
	MoodTip(ctx context.Context, mood string) string
	AnalyzeJournal(ctx context.Context, text string) internal.JournalAnalysis
}

// New selects the implementation from configuration. Without a credential
// the app runs entirely on deterministic offline responses; the switch is
// silent by contract.
func New(cfg *config.Config, logger internal.Logger) Advisor {
	local := NewLocalAdvisor()
	if !cfg.AIEnabled() {
		logger.Warn("advisor: no API key configured, running in offline mode")
		return local
	}
	return NewGeminiAdvisor(cfg.GeminiKey, cfg.GeminiModel, local, logger)
}
