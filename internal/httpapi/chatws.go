package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/oaklee/shopassist/internal/chat"
)

// handleChatWS runs a full conversation over a single websocket. Each
// inbound frame is one turn request; the reply frame carries the
// assistant message and any recommendations. The session established by
// the first turn is reused for subsequent frames that omit a session id.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Printf("chat ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var sessionID string
	for {
		var req chat.TurnRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("chat ws: read failed: %v", err)
			}
			return
		}
		if req.SessionID == "" {
			req.SessionID = sessionID
		}
		if _, msg, ok := validateTurn(req); !ok {
			if err := conn.WriteJSON(wsError{Error: msg}); err != nil {
				return
			}
			continue
		}

		resp, err := s.chat.HandleTurn(r.Context(), req)
		if err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				if werr := conn.WriteJSON(wsError{Error: err.Error()}); werr != nil {
					return
				}
				continue
			}
			log.Printf("chat ws: turn failed: %v", err)
			return
		}
		sessionID = resp.SessionID
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

type wsError struct {
	Error string `json:"error"`
}
