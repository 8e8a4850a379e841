package chat

import "sync"

// MaxHistoryTurns bounds every session's conversation log. Oldest turns
// are evicted first.
const MaxHistoryTurns = 20

// HistoryStore holds per-session conversation history for the process
// lifetime. It owns every turn it stores; readers only ever see copies.
// Appends to different sessions do not contend: the store-level lock is
// held only to locate the session entry.
type HistoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionLog
}

type sessionLog struct {
	mu    sync.Mutex
	turns []Turn
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{sessions: make(map[string]*sessionLog)}
}

// Append atomically appends turns to the session's history, then truncates
// from the front to keep at most MaxHistoryTurns.
func (s *HistoryStore) Append(sessionID string, turns ...Turn) {
	if len(turns) == 0 {
		return
	}

	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionLog{}
		s.sessions[sessionID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.turns = append(entry.turns, turns...)
	if n := len(entry.turns); n > MaxHistoryTurns {
		entry.turns = append(entry.turns[:0:0], entry.turns[n-MaxHistoryTurns:]...)
	}
}

// Read returns a snapshot copy of the session's history, oldest first.
// Unknown sessions yield an empty slice.
func (s *HistoryStore) Read(sessionID string) []Turn {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	out := make([]Turn, len(entry.turns))
	copy(out, entry.turns)
	return out
}

// Clear removes the session's history entirely. Clearing an absent
// session is a no-op.
func (s *HistoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// SessionCount reports how many sessions currently hold history.
func (s *HistoryStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
