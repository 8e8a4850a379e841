package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/oaklee/shopassist/internal/catalog"
	"github.com/oaklee/shopassist/internal/chat"
	"github.com/oaklee/shopassist/internal/checkout"
	"github.com/oaklee/shopassist/internal/config"
	"github.com/oaklee/shopassist/internal/observability"
	"github.com/oaklee/shopassist/internal/search"
)

type Server struct {
	cfg      config.Config
	chat     *chat.Service
	search   *search.Service
	checkout *checkout.Proxy
	catalog  catalog.Store
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

func New(cfg config.Config, chatSvc *chat.Service, searchSvc *search.Service, checkoutProxy *checkout.Proxy, store catalog.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		chat:     chatSvc,
		search:   searchSvc,
		checkout: checkoutProxy,
		catalog:  store,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same
				// origin unless explicitly opened up.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/chat", s.handleChat)
	r.Get("/v1/chat/ws", s.handleChatWS)
	r.Get("/v1/chat/history", s.handleChatHistory)
	r.Post("/v1/chat/session/clear", s.handleClearSession)
	r.Get("/v1/search", s.handleSearch)
	r.Post("/v1/search/reindex", s.handleReindex)
	r.Post("/v1/checkout", s.handleCheckout)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"search_enabled":   s.search != nil,
		"checkout_enabled": s.checkout != nil,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.TurnRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if code, msg, ok := validateTurn(req); !ok {
		respondError(w, http.StatusBadRequest, code, msg)
		return
	}

	resp, err := s.chat.HandleTurn(r.Context(), req)
	if err != nil {
		// Only the empty-message precondition surfaces; everything else
		// is absorbed into the fallback reply.
		respondError(w, http.StatusBadRequest, "invalid_message", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func validateTurn(req chat.TurnRequest) (code, msg string, ok bool) {
	if strings.TrimSpace(req.Message) == "" {
		return "invalid_message", "message is required", false
	}
	if len(req.Message) > chat.MaxMessageLen {
		return "message_too_long", "message cannot exceed 500 characters", false
	}
	return "", "", true
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "query parameter session_id is required")
		return
	}
	turns := s.chat.History(sessionID)
	if turns == nil {
		turns = []chat.Turn{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"turns":      turns,
	})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	fresh := s.chat.ClearSession(req.SessionID)
	respondJSON(w, http.StatusOK, map[string]string{"session_id": fresh})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.search == nil {
		respondError(w, http.StatusServiceUnavailable, "search_unavailable", "semantic search is not configured")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := s.search.Search(r.Context(), query)
	if err != nil {
		// Only context cancellation escapes the fallback chain.
		respondError(w, http.StatusGatewayTimeout, "search_cancelled", err.Error())
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": items})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if s.search == nil {
		respondError(w, http.StatusServiceUnavailable, "search_unavailable", "semantic search is not configured")
		return
	}
	if err := s.search.EnsureIndex(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "index_unavailable", err.Error())
		return
	}
	items, err := s.catalog.Query(r.Context(), catalog.Query{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	if err := s.search.IndexProducts(r.Context(), items); err != nil {
		respondError(w, http.StatusBadGateway, "indexing_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"indexed": len(items)})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if s.checkout == nil {
		respondError(w, http.StatusServiceUnavailable, "checkout_unavailable", "checkout service is not configured")
		return
	}
	var req struct {
		CustomerID   string `json:"customer_id"`
		PaymentToken string `json:"payment_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.CustomerID) == "" || strings.TrimSpace(req.PaymentToken) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "customer_id and payment_token are required")
		return
	}

	result, err := s.checkout.Checkout(r.Context(), req.CustomerID, req.PaymentToken)
	if err != nil {
		s.respondCheckoutError(w, err)
		return
	}
	s.metrics.CheckoutResults.WithLabelValues("ok").Inc()
	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) respondCheckoutError(w http.ResponseWriter, err error) {
	var (
		ve *checkout.ValidationError
		ue *checkout.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		s.metrics.CheckoutResults.WithLabelValues("validation_failed").Inc()
		respondError(w, http.StatusBadRequest, "validation_failed", ve.Details)
	case errors.Is(err, checkout.ErrUnavailable):
		s.metrics.CheckoutResults.WithLabelValues("unavailable").Inc()
		respondError(w, http.StatusServiceUnavailable, "upstream_unavailable", err.Error())
	case errors.Is(err, checkout.ErrTimeout):
		s.metrics.CheckoutResults.WithLabelValues("timeout").Inc()
		respondError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.Is(err, checkout.ErrTransport):
		s.metrics.CheckoutResults.WithLabelValues("transport_error").Inc()
		respondError(w, http.StatusBadGateway, "transport_error", err.Error())
	case errors.As(err, &ue):
		s.metrics.CheckoutResults.WithLabelValues("upstream_error").Inc()
		respondError(w, http.StatusBadGateway, "upstream_error", ue.Error())
	default:
		s.metrics.CheckoutResults.WithLabelValues("internal_error").Inc()
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
