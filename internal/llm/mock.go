package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient provides deterministic local replies when no API key is
// configured. Tests set Reply or Err to script behavior.
type MockClient struct {
	Reply string
	Err   error

	// LastMessages records the most recent request for assertions.
	LastMessages []Message
}

func NewMockClient() *MockClient { return &MockClient{} }

func (c *MockClient) Complete(ctx context.Context, messages []Message, _ Options) (Reply, error) {
	select {
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	default:
	}

	c.LastMessages = messages
	if c.Err != nil {
		return Reply{}, c.Err
	}
	if c.Reply != "" {
		return Reply{Text: c.Reply}, nil
	}
	return Reply{Text: buildMockReply(messages)}, nil
}

func buildMockReply(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			text := strings.TrimSpace(messages[i].Content)
			if text == "" {
				break
			}
			return fmt.Sprintf("I heard you: %s. Tell me more about what you are shopping for.", text)
		}
	}
	return "What are you shopping for today?"
}
