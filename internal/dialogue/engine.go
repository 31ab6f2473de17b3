// Package dialogue provides the chat collaborator of the console: a
// stateful prompt→text engine and its Gemini-backed implementation.
package dialogue

import (
	"context"
	"errors"
	"strings"
)

// ExitSentinel is the user input that leaves the dialogue.
const ExitSentinel = "q"

// GreetingPrompt asks the assistant to introduce itself when a dialogue starts.
const GreetingPrompt = "Tell me about yourself in a brief and engaging way."

// ErrNotConfigured is returned by engines that lack credentials.
var ErrNotConfigured = errors.New("dialogue engine is not configured")

// Engine sends one user turn and returns the assistant's reply. Engines keep
// the conversation history, so later turns see earlier ones.
type Engine interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// Unconfigured is the Engine used when no API key is available.
type Unconfigured struct{}

func (Unconfigured) Send(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// FormatReply turns the markdown bullets of a reply into plain bullets and
// drops bold markers.
func FormatReply(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "•")
	return strings.TrimSpace(text)
}
