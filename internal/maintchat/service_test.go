package maintchat

import (
	"context"
	"strings"
	"testing"

	"propdocs-backend/internal/llm"
)

type fakeClient struct {
	lastMessages []llm.Message
	out          string
}

func (f *fakeClient) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	f.lastMessages = messages
	return f.out, nil
}

func TestNeedsContractor(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{text: "We recommend contacting a licensed contractor", want: true},
		{text: "Tighten the valve with a wrench", want: false},
		{text: "Call a PROFESSIONAL plumber immediately", want: true},
		{text: "An expert should look at this wiring", want: true},
		{text: "", want: false},
	}
	for _, tc := range cases {
		if got := NeedsContractor(tc.text); got != tc.want {
			t.Fatalf("NeedsContractor(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestChatPrependsSystemInstruction(t *testing.T) {
	fake := &fakeClient{out: "Tighten the valve with a wrench"}
	svc := NewService(llm.NewAnalyzer(fake))

	details := RequestDetails{
		PropertyName: "Maple Court",
		UnitNumber:   "4B",
		Category:     "plumbing",
		Description:  "Kitchen faucet drips",
		Urgency:      "low",
	}
	history := []llm.Message{
		{Role: "user", Content: "My faucet keeps dripping, what can I do?"},
	}

	reply, err := svc.Chat(context.Background(), details, history)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.NeedsContractor {
		t.Fatalf("expected DIY reply not to flag a contractor")
	}

	if len(fake.lastMessages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(fake.lastMessages))
	}
	sys := fake.lastMessages[0]
	if sys.Role != "system" {
		t.Fatalf("expected first message role system, got %s", sys.Role)
	}
	if !strings.Contains(sys.Content, `"propertyName":"Maple Court"`) {
		t.Fatalf("system prompt missing serialized details: %q", sys.Content)
	}
	if fake.lastMessages[1].Content != history[0].Content {
		t.Fatalf("history not forwarded verbatim")
	}
}

func TestChatFlagsContractorReply(t *testing.T) {
	fake := &fakeClient{out: "This looks serious; please hire a contractor."}
	svc := NewService(llm.NewAnalyzer(fake))

	reply, err := svc.Chat(context.Background(), RequestDetails{}, []llm.Message{
		{Role: "user", Content: "The ceiling is leaking"},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !reply.NeedsContractor {
		t.Fatalf("expected contractor reply to be flagged")
	}
}
