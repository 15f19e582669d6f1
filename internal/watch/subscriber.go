package watch

import (
	"context"

	"proinc-backend/internal/models"
)

// UserFeed pushes the current user record and every subsequent change. The
// mongo-backed implementation lives in the repository package; tests feed a
// plain channel.
type UserFeed interface {
	WatchUser(ctx context.Context, id string) (<-chan models.User, error)
}

// ApprovalSubscriber watches a user record until an administrator approves
// it.
type ApprovalSubscriber struct {
	feed UserFeed
}

func NewApprovalSubscriber(feed UserFeed) *ApprovalSubscriber {
	return &ApprovalSubscriber{feed: feed}
}

// Await signals on the returned channel exactly once, on the first observed
// record with IsApproved set. Later true values are ignored; downstream
// navigation is idempotent anyway, but a single signal keeps the contract
// clean. Canceling ctx closes the underlying feed and ends the watch.
func (s *ApprovalSubscriber) Await(ctx context.Context, userID string) (<-chan struct{}, error) {
	updates, err := s.feed.WatchUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	approved := make(chan struct{})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case user, ok := <-updates:
				if !ok {
					return
				}
				if user.IsApproved {
					close(approved)
					return
				}
			}
		}
	}()

	return approved, nil
}
