package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kaushik360/counsy/internal"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdvisor calls the Gemini generateContent endpoint. Every failure
// (transport, non-200, empty or malformed body) is absorbed into the local
// advisor so callers always get a usable response.
type GeminiAdvisor struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	fallback   *LocalAdvisor
	logger     internal.Logger
}

func NewGeminiAdvisor(apiKey, model string, fallback *LocalAdvisor, logger internal.Logger) *GeminiAdvisor {
	return &GeminiAdvisor{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		fallback:   fallback,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAdvisor) generate(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

func (g *GeminiAdvisor) Converse(ctx context.Context, history []internal.ChatMessage, message, displayName string) string {
	prompt := fmt.Sprintf(`You are a compassionate, empathetic, and professional student wellness counselor named "Counsy AI".
Your goal is to provide emotional support, stress management tips, and academic motivation.

The user's full name is %q. Address them by their name occasionally to create a personal connection.

User's message: %q

Instructions:
- Always identify yourself as "Counsy AI" if asked.
- Keep responses warm, short (under 60 words), and conversational.
- Validate feelings first.
- Offer actionable advice if appropriate.
- Do not diagnose medical conditions.
- Use emojis sparingly but effectively to be friendly.`, displayName, message)

	text, err := g.generate(ctx, prompt, nil)
	if err != nil {
		g.logger.Warnf("advisor: chat call failed, using offline response: %v", err)
		return g.fallback.Converse(ctx, history, message, displayName)
	}
	return text
}

func (g *GeminiAdvisor) MoodTip(ctx context.Context, mood string) string {
	prompt := fmt.Sprintf("The user is feeling %q. Give a 1-sentence supportive insight or micro-tip for a student.", mood)
	text, err := g.generate(ctx, prompt, nil)
	if err != nil {
		g.logger.Warnf("advisor: mood tip call failed, using offline response: %v", err)
		return g.fallback.MoodTip(ctx, mood)
	}
	return text
}

func (g *GeminiAdvisor) AnalyzeJournal(ctx context.Context, text string) internal.JournalAnalysis {
	prompt := fmt.Sprintf(`Analyze this student journal entry: %q.
Return JSON with the following keys:
1. moodSummary: A concise summary of the emotional tone.
2. productivityInsight: An observation about productivity.
3. recommendations: An array of 1-2 short, actionable wellness recommendations.`, text)

	raw, err := g.generate(ctx, prompt, &generationConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		g.logger.Warnf("advisor: journal analysis call failed, using offline response: %v", err)
		return g.fallback.AnalyzeJournal(ctx, text)
	}

	var analysis internal.JournalAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		g.logger.Warnf("advisor: journal analysis is not valid JSON, using offline response: %v", err)
		return g.fallback.AnalyzeJournal(ctx, text)
	}
	return analysis
}

var _ Advisor = (*GeminiAdvisor)(nil)
