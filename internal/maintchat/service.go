package maintchat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"propdocs-backend/internal/llm"
	"propdocs-backend/internal/shared/metrics"
)

// RequestDetails is the structured maintenance request the chat is grounded in.
type RequestDetails struct {
	PropertyName string `json:"propertyName,omitempty"`
	UnitNumber   string `json:"unitNumber,omitempty"`
	Category     string `json:"category,omitempty"`
	Description  string `json:"description,omitempty"`
	Urgency      string `json:"urgency,omitempty"`
}

// Reply is one assistant turn plus the contractor heuristic result.
type Reply struct {
	Text            string
	NeedsContractor bool
}

// Service runs maintenance-triage chat turns over the shared completion
// gateway. It keeps no conversation state; callers resend the full history.
type Service struct {
	Analyzer *llm.Analyzer
}

// NewService constructs a Service.
func NewService(analyzer *llm.Analyzer) *Service {
	return &Service{Analyzer: analyzer}
}

const systemPrompt = `You are a property maintenance assistant helping a tenant troubleshoot an issue. Give practical, step-by-step guidance for safe DIY fixes. When a repair requires a licensed professional, say so clearly. Maintenance request details:
%s`

// Chat forwards the message history with a request-grounded system
// instruction and classifies the reply.
func (s *Service) Chat(ctx context.Context, details RequestDetails, history []llm.Message) (Reply, error) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return Reply{}, err
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: fmt.Sprintf(systemPrompt, string(detailsJSON)),
	})
	messages = append(messages, history...)

	text, err := s.Analyzer.Complete(ctx, messages)
	if err != nil {
		return Reply{}, err
	}
	metrics.IncMaintChat()

	return Reply{
		Text:            text,
		NeedsContractor: NeedsContractor(text),
	}, nil
}

// contractorTerms flag replies that imply professional (non-DIY) help.
var contractorTerms = []string{"professional", "contractor", "expert"}

// NeedsContractor is a best-effort substring classification of a reply. It is
// knowingly lossy; false positives and negatives are expected, and nothing
// safety-critical may depend on it.
func NeedsContractor(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range contractorTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
