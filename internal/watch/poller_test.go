package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"proinc-backend/internal/identity"
)

type fakeReloader struct {
	calls         atomic.Int64
	verifiedAfter int64
	failFirst     bool
}

func (f *fakeReloader) Reload(ctx context.Context, id string) (identity.Session, error) {
	n := f.calls.Add(1)
	if f.failFirst && n == 1 {
		return identity.Session{}, errors.New("transient reload failure")
	}
	return identity.Session{
		ID:            id,
		EmailVerified: n >= f.verifiedAfter,
	}, nil
}

func TestVerificationPoller_SignalsOnVerified(t *testing.T) {
	t.Parallel()

	reloader := &fakeReloader{verifiedAfter: 3}
	poller := NewVerificationPoller(reloader, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case <-poller.Await(ctx, "u1"):
	case <-time.After(2 * time.Second):
		t.Fatal("poller never signaled verification")
	}

	if got := reloader.calls.Load(); got < 3 {
		t.Fatalf("expected at least 3 reloads, got %d", got)
	}
}

func TestVerificationPoller_RetriesAfterFailure(t *testing.T) {
	t.Parallel()

	reloader := &fakeReloader{verifiedAfter: 2, failFirst: true}
	poller := NewVerificationPoller(reloader, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case <-poller.Await(ctx, "u1"):
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not recover from a transient reload failure")
	}
}

func TestVerificationPoller_CancelStopsPolling(t *testing.T) {
	t.Parallel()

	reloader := &fakeReloader{verifiedAfter: 1 << 30} // never verifies
	poller := NewVerificationPoller(reloader, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	verified := poller.Await(ctx, "u1")

	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	callsAfterCancel := reloader.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := reloader.calls.Load(); got != callsAfterCancel {
		t.Fatalf("poller kept reloading after cancel: %d -> %d", callsAfterCancel, got)
	}

	select {
	case <-verified:
		t.Fatal("canceled poller must not signal")
	default:
	}
}
