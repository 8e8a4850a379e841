package checkout

import (
	"errors"
	"fmt"
	"time"
)

// Result is a completed order. CustomerID is always the caller-supplied
// value: the upstream response does not echo it back reliably, so the
// proxy is the source of truth for that field.
type Result struct {
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Closed error set for the proxy. Callers decide retry vs. abort from the
// classification:
//   - ValidationError: bad input, do not retry without changing it.
//   - ErrUnavailable: upstream signalled overload/maintenance, retry allowed.
//   - UpstreamError: unexpected status or a success with an unusable body.
//   - ErrTransport: no response was obtained at all.
//   - ErrTimeout: the deadline expired or the call was cancelled in flight.
var (
	ErrUnavailable = errors.New("checkout service temporarily unavailable")
	ErrTransport   = errors.New("checkout transport failure")
	ErrTimeout     = errors.New("checkout request timed out")
)

// ValidationError carries the upstream rejection details.
type ValidationError struct {
	Details string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed: %s", e.Details)
}

// UpstreamError reports a response outside the mapped protocol.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("checkout upstream error: status %d: %s", e.Status, e.Body)
}
