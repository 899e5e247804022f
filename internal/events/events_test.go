package events_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/wingbank/appconfig/internal/events"
)

func TestWebhookSignature(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
	}))
	defer srv.Close()
	wh := events.NewWebhookSink(events.WebhookConfig{Enabled: true, Endpoint: srv.URL, Secret: "s"})
	evt := events.New("translation.updated", "t1", "admin", nil)
	if err := wh.Emit(context.Background(), evt); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(gotBody) == 0 {
		t.Fatal("no body")
	}
	mac := hmac.New(sha256.New, []byte("s"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if got := gotHeader.Get("X-Wing-Signature"); got != want {
		t.Fatalf("signature=%q want %q", got, want)
	}
	if got := events.Signature("s", gotBody); got != want {
		t.Fatalf("Signature helper=%q want %q", got, want)
	}
	if got := gotHeader.Get("X-Wing-Event"); got != "translation.updated" {
		t.Fatalf("event header=%q", got)
	}
	if got := gotHeader.Get("X-Wing-Delivery"); got != evt.ID {
		t.Fatalf("delivery header=%q want %q", got, evt.ID)
	}
}

func TestWebhookRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	wh := events.NewWebhookSink(events.WebhookConfig{Enabled: true, Endpoint: srv.URL})
	if err := wh.Emit(context.Background(), events.New("banner.created", "b1", "", nil)); err == nil {
		t.Fatal("expected error on 502")
	}
}

type failSink struct {
	mu    sync.Mutex
	count int
}

func (f *failSink) Emit(ctx context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	return errors.New("fail")
}

func (f *failSink) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type memDLQ struct {
	mu     sync.Mutex
	stored []events.Event
}

func (m *memDLQ) Store(ctx context.Context, e events.Event, attempts int, lastErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = append(m.stored, e)
	return nil
}

func TestRetryThenDLQ(t *testing.T) {
	s := &failSink{}
	dlq := &memDLQ{}
	d := events.NewDispatcher(events.Config{Retry: events.RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond}}, dlq, s)
	d.Dispatch(context.Background(), events.New("language.deleted", "l1", "admin", nil))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		dlq.mu.Lock()
		n := len(dlq.stored)
		dlq.mu.Unlock()
		if n == 1 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if got := s.attempts(); got != 2 {
		t.Fatalf("attempts=%d", got)
	}
	dlq.mu.Lock()
	defer dlq.mu.Unlock()
	if len(dlq.stored) != 1 || dlq.stored[0].Name != "language.deleted" {
		t.Fatalf("dlq=%+v", dlq.stored)
	}
}
