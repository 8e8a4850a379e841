package chat

import (
	"fmt"
	"sync"
	"testing"
)

func turn(sessionID string, i int) Turn {
	return Turn{SessionID: sessionID, Role: RoleUser, Content: fmt.Sprintf("message %d", i)}
}

func TestHistoryTruncatesToCap(t *testing.T) {
	s := NewHistoryStore()
	for i := 0; i < 25; i++ {
		s.Append("s1", turn("s1", i))
	}

	got := s.Read("s1")
	if len(got) != MaxHistoryTurns {
		t.Fatalf("len(Read()) = %d, want %d", len(got), MaxHistoryTurns)
	}
	// The 20 most recent in original order: messages 5..24.
	for i, tr := range got {
		want := fmt.Sprintf("message %d", i+5)
		if tr.Content != want {
			t.Fatalf("Read()[%d].Content = %q, want %q", i, tr.Content, want)
		}
	}
}

func TestHistoryReadAbsentSession(t *testing.T) {
	s := NewHistoryStore()
	if got := s.Read("nope"); len(got) != 0 {
		t.Fatalf("Read(absent) = %v, want empty", got)
	}
}

func TestHistoryReadReturnsSnapshot(t *testing.T) {
	s := NewHistoryStore()
	s.Append("s1", turn("s1", 0), turn("s1", 1))

	snap := s.Read("s1")
	snap[0].Content = "mutated"

	if got := s.Read("s1"); got[0].Content != "message 0" {
		t.Fatalf("snapshot mutation leaked into store: %q", got[0].Content)
	}
}

func TestHistoryClearIsIdempotent(t *testing.T) {
	s := NewHistoryStore()
	s.Append("s1", turn("s1", 0))
	s.Clear("s1")
	s.Clear("s1")
	s.Clear("never-existed")
	if got := s.Read("s1"); len(got) != 0 {
		t.Fatalf("Read() after Clear = %v, want empty", got)
	}
}

func TestHistoryConcurrentAppendsToDistinctSessions(t *testing.T) {
	s := NewHistoryStore()
	const perSession = 200

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func(sessionID string) {
			defer wg.Done()
			for i := 0; i < perSession; i++ {
				s.Append(sessionID, turn(sessionID, i))
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []string{"a", "b"} {
		got := s.Read(id)
		if len(got) != MaxHistoryTurns {
			t.Fatalf("session %s len = %d, want %d", id, len(got), MaxHistoryTurns)
		}
		// No lost turns: the tail must be the last appended messages in order.
		for i, tr := range got {
			want := fmt.Sprintf("message %d", perSession-MaxHistoryTurns+i)
			if tr.Content != want {
				t.Fatalf("session %s Read()[%d] = %q, want %q", id, i, tr.Content, want)
			}
		}
	}
}

func TestHistoryConcurrentMixedOps(t *testing.T) {
	s := NewHistoryStore()
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.Append("s1", turn("s1", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			snap := s.Read("s1")
			if len(snap) > MaxHistoryTurns {
				t.Errorf("Read() len = %d exceeds cap", len(snap))
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			s.Clear("s1")
		}
	}()
	wg.Wait()
}
