package chat

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/oaklee/shopassist/internal/catalog"
	"github.com/oaklee/shopassist/internal/llm"
	"github.com/oaklee/shopassist/internal/observability"
)

// FallbackReply is returned for any internal failure during a turn. The
// chat path never surfaces internal errors to the caller.
const FallbackReply = "I'm sorry, I'm having trouble right now. Please try again later."

// MaxMessageLen bounds inbound chat messages.
const MaxMessageLen = 500

// historyContextTurns is how many recent turns accompany each completion.
const historyContextTurns = 5

// ErrEmptyMessage rejects a turn before any work begins. It is the only
// error HandleTurn returns.
var ErrEmptyMessage = errors.New("message cannot be empty")

type TurnRequest struct {
	Message    string `json:"message"`
	SessionID  string `json:"session_id"`
	CustomerID string `json:"customer_id"`
}

type TurnResponse struct {
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	SessionID       string           `json:"session_id"`
}

// Service orchestrates one chat turn: interpret, retrieve, prompt, invoke,
// extract, record.
type Service struct {
	history     *HistoryStore
	retriever   *Retriever
	client      llm.ChatClient
	metrics     *observability.Metrics
	maxTokens   int
	temperature float32
}

func NewService(history *HistoryStore, store catalog.Store, client llm.ChatClient, metrics *observability.Metrics, maxTokens int, temperature float32) *Service {
	return &Service{
		history:     history,
		retriever:   NewRetriever(store),
		client:      client,
		metrics:     metrics,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// HandleTurn runs the full pipeline for one user message. Internal
// failures are absorbed into the fallback reply; only an empty message is
// rejected up front.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	if req.Message == "" {
		s.metrics.ChatTurns.WithLabelValues("rejected").Inc()
		return TurnResponse{}, ErrEmptyMessage
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	started := time.Now()
	resp, err := s.runTurn(ctx, sessionID, req.Message)
	s.metrics.ObserveChatTurnLatency(time.Since(started))
	if err != nil {
		log.Printf("chat turn failed for session %s: %v", sessionID, err)
		s.metrics.ChatTurns.WithLabelValues("fallback_reply").Inc()
		return TurnResponse{Message: FallbackReply, SessionID: sessionID}, nil
	}

	s.metrics.ChatTurns.WithLabelValues("ok").Inc()
	return resp, nil
}

func (s *Service) runTurn(ctx context.Context, sessionID, message string) (TurnResponse, error) {
	filters := Interpret(message)

	items, usedFallback, err := s.retriever.Retrieve(ctx, filters)
	if err != nil {
		return TurnResponse{}, err
	}
	if usedFallback {
		s.metrics.RetrievalFallbacks.WithLabelValues("cheapest").Inc()
	}

	systemPrompt := BuildSystemPrompt(items)
	messages := s.buildMessages(sessionID, systemPrompt, message)

	reply, err := s.client.Complete(ctx, messages, llm.Options{
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		s.metrics.ModelErrors.Inc()
		return TurnResponse{}, err
	}

	recs, unmatched, found := ExtractRecommendations(reply.Text, items)
	if unmatched > 0 {
		// The model named SKUs outside its context. Dropped from the
		// result, but worth watching.
		log.Printf("session %s: %d unmatched SKU markers in reply", sessionID, unmatched)
		s.metrics.UnmatchedSKUs.Add(float64(unmatched))
	}
	if found {
		s.metrics.Recommendations.Add(float64(len(recs)))
	}

	now := time.Now().UTC()
	s.history.Append(sessionID,
		Turn{SessionID: sessionID, Role: RoleUser, Content: message, CreatedAt: now},
		Turn{SessionID: sessionID, Role: RoleAssistant, Content: reply.Text, CreatedAt: now},
	)
	s.metrics.ActiveSessions.Set(float64(s.history.SessionCount()))

	return TurnResponse{
		Message:         reply.Text,
		Recommendations: recs,
		SessionID:       sessionID,
	}, nil
}

// buildMessages assembles [system] + up to the most recent history turns +
// the current user turn.
func (s *Service) buildMessages(sessionID, systemPrompt, message string) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}

	history := s.history.Read(sessionID)
	if n := len(history); n > historyContextTurns {
		history = history[n-historyContextTurns:]
	}
	for _, t := range history {
		messages = append(messages, llm.Message{Role: llm.Role(t.Role), Content: t.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: message})
}

// History returns a snapshot of the session's conversation.
func (s *Service) History(sessionID string) []Turn {
	return s.history.Read(sessionID)
}

// ClearSession drops the session's history and mints a fresh session id
// for continuation. Idempotent.
func (s *Service) ClearSession(sessionID string) string {
	s.history.Clear(sessionID)
	s.metrics.ActiveSessions.Set(float64(s.history.SessionCount()))
	return uuid.NewString()
}
