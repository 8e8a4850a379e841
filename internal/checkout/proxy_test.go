package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newProxyFor(handler http.HandlerFunc) (*Proxy, *httptest.Server) {
	ts := httptest.NewServer(handler)
	return NewProxy(ts.URL, 5*time.Second), ts
}

func TestCheckoutSuccessMapsResult(t *testing.T) {
	p, ts := newProxyFor(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/checkout" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":42,"status":"Paid","total":99.99,"createdUtc":"2026-08-01T12:00:00Z"}`))
	})
	defer ts.Close()

	got, err := p.Checkout(context.Background(), "cust-7", "tok-1")
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if got.OrderID != 42 || got.Status != "Paid" || got.Total != 99.99 {
		t.Fatalf("Result = %+v, want orderId 42, Paid, 99.99", got)
	}
	if got.CustomerID != "cust-7" {
		t.Fatalf("CustomerID = %q, want caller-supplied %q", got.CustomerID, "cust-7")
	}
}

func TestCheckoutBadRequestIsValidationError(t *testing.T) {
	p, ts := newProxyFor(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "payment token expired", http.StatusBadRequest)
	})
	defer ts.Close()

	_, err := p.Checkout(context.Background(), "c", "t")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Checkout() error = %v, want *ValidationError", err)
	}
	if ve.Details != "payment token expired" {
		t.Fatalf("Details = %q", ve.Details)
	}
}

func TestCheckoutServiceUnavailable(t *testing.T) {
	p, ts := newProxyFor(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer ts.Close()

	_, err := p.Checkout(context.Background(), "c", "t")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Checkout() error = %v, want ErrUnavailable", err)
	}
}

func TestCheckoutUnexpectedStatusIsUpstreamError(t *testing.T) {
	p, ts := newProxyFor(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusTeapot)
	})
	defer ts.Close()

	_, err := p.Checkout(context.Background(), "c", "t")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Checkout() error = %v, want *UpstreamError", err)
	}
	if ue.Status != http.StatusTeapot {
		t.Fatalf("Status = %d, want %d", ue.Status, http.StatusTeapot)
	}
}

func TestCheckoutEmptySuccessBodyIsUpstreamError(t *testing.T) {
	p, ts := newProxyFor(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer ts.Close()

	_, err := p.Checkout(context.Background(), "c", "t")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Checkout() error = %v, want *UpstreamError for empty body", err)
	}
}

func TestCheckoutUnparseableBodyIsUpstreamError(t *testing.T) {
	p, ts := newProxyFor(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	defer ts.Close()

	_, err := p.Checkout(context.Background(), "c", "t")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Checkout() error = %v, want *UpstreamError for unparseable body", err)
	}
}

func TestCheckoutConnectionRefusedIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close() // nothing listening anymore

	p := NewProxy(url, 2*time.Second)
	_, err := p.Checkout(context.Background(), "c", "t")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Checkout() error = %v, want ErrTransport", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("connection refused must not classify as timeout")
	}
}

func TestCheckoutCancelledInFlightIsTimeout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p, ts := newProxyFor(func(http.ResponseWriter, *http.Request) {
		close(started)
		<-release
	})
	defer ts.Close()
	// Unblock the handler before ts.Close so shutdown does not hang on it.
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		_, err := p.Checkout(ctx, "c", "t")
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("Checkout() error = %v, want ErrTimeout", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Checkout() did not return after cancellation")
	}
}

func TestCheckoutCancelledDuringBodyReadIsTimeout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p, ts := newProxyFor(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		close(started)
		<-release
	})
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		_, err := p.Checkout(ctx, "c", "t")
		errCh <- err
	}()

	// Headers are out, the body never completes; cancel mid-read.
	<-started
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("Checkout() error = %v, want ErrTimeout", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Checkout() did not return after cancellation")
	}
}

func TestCheckoutDeadlineExceededIsTimeout(t *testing.T) {
	release := make(chan struct{})
	p, ts := newProxyFor(func(http.ResponseWriter, *http.Request) {
		<-release
	})
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Checkout(ctx, "c", "t")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Checkout() error = %v, want ErrTimeout", err)
	}
}
