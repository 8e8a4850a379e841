package llm

import (
	"context"
	"errors"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the sequence sent upstream.
type Message struct {
	Role    Role
	Content string
}

// Options bound a single completion call.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Reply is the assistant text plus usage accounting.
type Reply struct {
	Text       string
	TokensUsed int
}

// ErrInvocationFailed wraps every upstream completion failure (auth,
// rate limit, malformed request). Context cancellation is reported as
// the context error instead, never wrapped.
var ErrInvocationFailed = errors.New("chat completion invocation failed")

// ChatClient invokes an external chat-completion capability. Implementations
// must not retry; retry policy belongs to the caller's transport.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message, opts Options) (Reply, error)
}
