package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Proxy forwards checkout intents to the external order service and
// translates its failure modes into the typed error set. One request per
// call, no retries.
type Proxy struct {
	baseURL string
	client  *http.Client
}

func NewProxy(baseURL string, timeout time.Duration) *Proxy {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Proxy{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type checkoutRequest struct {
	CustomerID   string `json:"customerId"`
	PaymentToken string `json:"paymentToken"`
}

type checkoutResponse struct {
	OrderID   int64     `json:"orderId"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdUtc"`
}

// Checkout issues the order request. On success the result carries the
// caller-supplied customerID.
func (p *Proxy) Checkout(ctx context.Context, customerID, paymentToken string) (Result, error) {
	payload, err := json.Marshal(checkoutRequest{CustomerID: customerID, PaymentToken: paymentToken})
	if err != nil {
		return Result{}, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/checkout", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("create checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(httpReq)
	if err != nil {
		return Result{}, classifyTransportError(ctx, err)
	}
	defer res.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if readErr != nil && ctx.Err() != nil {
		// Cancellation struck after the response started arriving.
		return Result{}, fmt.Errorf("%w: %v", ErrTimeout, readErr)
	}

	switch {
	case res.StatusCode == http.StatusBadRequest:
		return Result{}, &ValidationError{Details: strings.TrimSpace(string(body))}
	case res.StatusCode == http.StatusServiceUnavailable:
		return Result{}, ErrUnavailable
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return Result{}, &UpstreamError{Status: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if readErr != nil {
		return Result{}, &UpstreamError{Status: res.StatusCode, Body: fmt.Sprintf("read body: %v", readErr)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Result{}, &UpstreamError{Status: res.StatusCode, Body: "empty response body"}
	}

	var parsed checkoutResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, &UpstreamError{Status: res.StatusCode, Body: fmt.Sprintf("unparseable response body: %v", err)}
	}

	return Result{
		OrderID:    parsed.OrderID,
		Status:     parsed.Status,
		Total:      parsed.Total,
		CustomerID: customerID,
		CreatedAt:  parsed.CreatedAt,
	}, nil
}

// classifyTransportError separates "no response was ever received"
// (ErrTransport) from deadline/cancellation in flight (ErrTimeout).
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
