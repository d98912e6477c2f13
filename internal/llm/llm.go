package llm

import (
	"context"
	"errors"
	"fmt"

	"propdocs-backend/internal/shared/telemetry"
)

// Message is one turn of a chat completion request.
type Message struct {
	Role    string
	Content string
}

// Client abstracts a chat-completion provider.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// ErrAnalysis is the generic failure surfaced to callers when the model
// backend cannot be reached or rejects a request. The underlying cause is
// logged, not returned.
var ErrAnalysis = errors.New("analysis failed")

// Analyzer wraps a Client with the document prompt templates. It holds no
// state between calls and never persists results.
type Analyzer struct {
	client Client
}

// NewAnalyzer constructs an Analyzer over the given client.
func NewAnalyzer(client Client) *Analyzer {
	return &Analyzer{client: client}
}

// Generate runs a single-turn completion for an arbitrary prompt. Analyze and
// Answer are built on it; callers may compose their own templates with it too.
func (a *Analyzer) Generate(ctx context.Context, prompt string) (string, error) {
	return a.complete(ctx, []Message{{Role: "user", Content: prompt}})
}

// Analyze summarizes a document: type, key dates, terms, issues, actions.
func (a *Analyzer) Analyze(ctx context.Context, text string) (string, error) {
	return a.complete(ctx, []Message{{Role: "user", Content: analysisPrompt(text)}})
}

// Answer responds to a question grounded in the supplied context string.
func (a *Analyzer) Answer(ctx context.Context, contextText, question string) (string, error) {
	return a.complete(ctx, []Message{{Role: "user", Content: answerPrompt(contextText, question)}})
}

// Complete forwards a prepared message sequence to the underlying client with
// the gateway's error translation. Used by callers that shape their own
// system/user turns, such as maintenance chat.
func (a *Analyzer) Complete(ctx context.Context, messages []Message) (string, error) {
	return a.complete(ctx, messages)
}

func (a *Analyzer) complete(ctx context.Context, messages []Message) (string, error) {
	out, err := a.client.Generate(ctx, messages)
	if err != nil {
		telemetry.Error("llm.generate", map[string]any{"error": err.Error()})
		return "", fmt.Errorf("%w: model backend error", ErrAnalysis)
	}
	return out, nil
}

// PlaceholderClient is a stub used when no provider is configured.
type PlaceholderClient struct{}

// Generate always fails; it exists so dev environments boot without a key.
func (PlaceholderClient) Generate(ctx context.Context, messages []Message) (string, error) {
	_ = ctx
	_ = messages
	return "", errors.New("llm provider not configured")
}
