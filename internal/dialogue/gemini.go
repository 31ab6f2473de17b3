package dialogue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/volt/internal/logging"
)

// GeminiConfig configures the Gemini generateContent endpoint.
type GeminiConfig struct {
	Endpoint          string
	APIKey            string
	Model             string
	SystemInstruction string
	Temperature       float64
	MaxOutputTokens   int
	Timeout           time.Duration
	HTTPClient        *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	SafetySettings    []geminiSafetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

var safetySettings = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_LOW_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_LOW_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_LOW_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_LOW_AND_ABOVE"},
}

// GeminiEngine is an Engine backed by the Gemini REST API. It is not safe
// for concurrent use.
type GeminiEngine struct {
	cfg     GeminiConfig
	log     logging.Logger
	history []geminiContent
}

// NewGeminiEngine builds an engine from cfg. Missing endpoint or client get
// defaults.
func NewGeminiEngine(cfg GeminiConfig, log logging.Logger) *GeminiEngine {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiEngine{cfg: cfg, log: log.With("engine", "gemini", "model", cfg.Model)}
}

// New returns a Gemini engine when an API key is configured and an
// Unconfigured engine otherwise.
func New(cfg GeminiConfig, log logging.Logger) Engine {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Unconfigured{}
	}
	return NewGeminiEngine(cfg, log)
}

// Send appends prompt to the conversation, requests a completion and records
// the reply. A failed request leaves the history unchanged.
func (e *GeminiEngine) Send(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(e.cfg.APIKey) == "" {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	turn := geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}}
	body := geminiRequest{
		Contents: append(append([]geminiContent(nil), e.history...), turn),
		GenerationConfig: geminiGenerationConfig{
			Temperature:      e.cfg.Temperature,
			TopP:             1,
			MaxOutputTokens:  e.cfg.MaxOutputTokens,
			ResponseMimeType: "text/plain",
		},
		SafetySettings: safetySettings,
	}
	if e.cfg.SystemInstruction != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: e.cfg.SystemInstruction}}}
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := strings.TrimRight(e.cfg.Endpoint, "/") + "/models/" + url.PathEscape(e.cfg.Model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// the key travels only in this header and is never logged
	req.Header.Set("x-goog-api-key", e.cfg.APIKey)

	started := time.Now()
	res, err := e.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read generate error body: %w", err)
		}
		return "", fmt.Errorf("generate request status %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	var payload geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if reason := payload.PromptFeedback.BlockReason; reason != "" {
		return "", fmt.Errorf("prompt blocked: %s", reason)
	}

	var reply strings.Builder
	if len(payload.Candidates) > 0 {
		for _, p := range payload.Candidates[0].Content.Parts {
			reply.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(reply.String())
	if text == "" {
		return "", fmt.Errorf("generate response has no text")
	}

	e.history = append(e.history, turn, geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}})
	e.log.Debug(ctx, "reply received", "turns", len(e.history)/2, "elapsed", time.Since(started))
	return text, nil
}
