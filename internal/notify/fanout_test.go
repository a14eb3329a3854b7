package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeSender records deliveries and fails for the tokens listed in fail.
type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	fail  map[string]bool
	delay time.Duration
}

func (f *fakeSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.fail[token] {
		return errors.New("unregistered token")
	}
	f.mu.Lock()
	f.sent = append(f.sent, token)
	f.mu.Unlock()
	return nil
}

type fakeResolver struct {
	userID string
	err    error
}

func (f fakeResolver) SupervisorOf(wardID string) (string, error) { return f.userID, f.err }

type fakeDirectory struct {
	tokens []string
	err    error
}

func (f fakeDirectory) ActiveTokensFor(userID string) ([]string, error) { return f.tokens, f.err }

func TestNotify_DeliversToAllEndpoints(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, fakeResolver{userID: "sup-1"}, fakeDirectory{tokens: []string{"a", "b", "c"}})

	count, err := n.Notify(context.Background(), "ward-1", "title", "body", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 deliveries, got %d", count)
	}
	if len(sender.sent) != 3 {
		t.Errorf("expected sender to see 3 tokens, got %d", len(sender.sent))
	}
}

// TestNotify_PartialFailureIsIsolated verifies that one failing endpoint does
// not stop delivery to the others and the call still reports the successes.
func TestNotify_PartialFailureIsIsolated(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"b": true}}
	n := NewNotifier(sender, fakeResolver{userID: "sup-1"}, fakeDirectory{tokens: []string{"a", "b", "c"}})

	count, err := n.Notify(context.Background(), "ward-1", "title", "body", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 deliveries with 1 failure, got %d", count)
	}
}

func TestNotify_EmptyTargetSetIsNoop(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, fakeResolver{userID: "sup-1"}, fakeDirectory{})

	count, err := n.Notify(context.Background(), "ward-1", "title", "body", nil)
	if err != nil {
		t.Fatalf("empty target set must not be an error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 deliveries, got %d", count)
	}
}

func TestNotify_NilSenderIsNoop(t *testing.T) {
	n := NewNotifier(nil, fakeResolver{userID: "sup-1"}, fakeDirectory{tokens: []string{"a"}})

	count, err := n.Notify(context.Background(), "ward-1", "title", "body", nil)
	if err != nil {
		t.Fatalf("nil sender must not be an error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 deliveries, got %d", count)
	}
}

func TestNotify_UnknownSupervisorPropagates(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, fakeResolver{err: errors.New("ward not found")}, fakeDirectory{tokens: []string{"a"}})

	if _, err := n.Notify(context.Background(), "ghost", "title", "body", nil); err == nil {
		t.Error("expected resolver error to propagate")
	}
}

// TestNotify_SlowEndpointTimesOut verifies the per-attempt timeout: a hung
// endpoint counts as failed but the fast ones still deliver, and the call
// returns once every attempt has completed or timed out.
func TestNotify_SlowEndpointTimesOut(t *testing.T) {
	slow := &fakeSender{delay: 200 * time.Millisecond}
	n := NewNotifier(slow, fakeResolver{userID: "sup-1"}, fakeDirectory{tokens: []string{"a", "b"}})
	n.SendTimeout = 20 * time.Millisecond

	start := time.Now()
	count, err := n.Notify(context.Background(), "ward-1", "title", "body", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 deliveries from a hung sender, got %d", count)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("notify did not respect the per-attempt timeout, took %s", elapsed)
	}
}
