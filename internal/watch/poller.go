// Package watch holds the two asynchronous condition watchers: a timed
// poller for email verification and a push-based subscriber for admin
// approval. Both are one-shot and tear themselves down when their context is
// canceled, so no timers or subscriptions outlive the request that opened
// them.
package watch

import (
	"context"
	"log"
	"time"

	"proinc-backend/internal/identity"
)

// DefaultPollInterval matches the 3-second reload cadence the verification
// pending view runs at.
const DefaultPollInterval = 3 * time.Second

// SessionReloader re-reads a session from the identity provider.
type SessionReloader interface {
	Reload(ctx context.Context, id string) (identity.Session, error)
}

// VerificationPoller watches an unverified session until the address is
// verified. Polling is admittedly crude, but it is isolated behind this type
// so a push-based mechanism can replace it if the provider grows one.
type VerificationPoller struct {
	reloader SessionReloader
	interval time.Duration
}

func NewVerificationPoller(reloader SessionReloader, interval time.Duration) *VerificationPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &VerificationPoller{reloader: reloader, interval: interval}
}

// Await reloads the session every interval until EmailVerified becomes true,
// then closes the returned channel exactly once and stops. Transient reload
// failures are logged and retried on the next tick. Canceling ctx stops the
// loop without a signal.
func (p *VerificationPoller) Await(ctx context.Context, sessionID string) <-chan struct{} {
	verified := make(chan struct{})

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				session, err := p.reloader.Reload(ctx, sessionID)
				if err != nil {
					log.Printf("Error reloading session %s: %v", sessionID, err)
					continue
				}
				if session.EmailVerified {
					close(verified)
					return
				}
			}
		}
	}()

	return verified
}
