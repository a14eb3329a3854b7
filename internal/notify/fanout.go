package notify

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// SupervisorResolver maps a ward to the supervisor who receives its alerts.
type SupervisorResolver interface {
	SupervisorOf(wardID string) (string, error)
}

// TokenDirectory lists the active endpoint tokens of a supervisor.
type TokenDirectory interface {
	ActiveTokensFor(userID string) ([]string, error)
}

// Notifier fans one logical notification out to every registered endpoint of
// the ward's supervisor. Deliveries are independent: each runs in its own
// goroutine with its own timeout, and one slow or dead token never blocks the
// rest. There are no retries; the transport is best effort.
type Notifier struct {
	Sender      Sender
	Supervisors SupervisorResolver
	Tokens      TokenDirectory

	// SendTimeout bounds each individual delivery attempt.
	SendTimeout time.Duration
}

const defaultSendTimeout = 5 * time.Second

func NewNotifier(sender Sender, supervisors SupervisorResolver, tokens TokenDirectory) *Notifier {
	return &Notifier{
		Sender:      sender,
		Supervisors: supervisors,
		Tokens:      tokens,
		SendTimeout: defaultSendTimeout,
	}
}

// Notify resolves the ward's supervisor and delivers to each of their active
// endpoints. It returns the number of successful deliveries; zero with a nil
// error means there was nobody to notify (or no sender configured), which is
// a documented no-op rather than a failure.
func (n *Notifier) Notify(ctx context.Context, wardID, title, body string, data map[string]string) (int, error) {
	if n.Sender == nil {
		log.Printf("[push] no sender configured, skipping notification for ward %s", wardID)
		return 0, nil
	}

	userID, err := n.Supervisors.SupervisorOf(wardID)
	if err != nil {
		return 0, err
	}

	tokens, err := n.Tokens.ActiveTokensFor(userID)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		log.Printf("[push] supervisor %s has no active tokens", userID)
		return 0, nil
	}

	timeout := n.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	var delivered int64
	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := n.Sender.Send(sendCtx, token, title, body, data); err != nil {
				log.Printf("[push] delivery to token %.12s... failed: %v", token, err)
				return
			}
			atomic.AddInt64(&delivered, 1)
		}(token)
	}
	wg.Wait()

	log.Printf("[push] ward %s: delivered %d/%d", wardID, delivered, len(tokens))
	return int(delivered), nil
}
