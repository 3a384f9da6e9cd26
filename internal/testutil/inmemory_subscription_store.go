package testutil

import (
	"context"

	"github.com/flexprice/billrun/internal/domain/subscription"
	ierr "github.com/flexprice/billrun/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]

	// ListErr, when set, is returned by ListActive to simulate a datastore
	// query failure.
	ListErr error
}

// NewInMemorySubscriptionStore creates a new in-memory subscription store
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func copySubscription(sub *subscription.Subscription) *subscription.Subscription {
	if sub == nil {
		return nil
	}

	out := *sub
	out.ServiceIDs = append([]string(nil), sub.ServiceIDs...)
	if sub.BillingDay != nil {
		day := *sub.BillingDay
		out.BillingDay = &day
	}
	if sub.StartDate != nil {
		d := *sub.StartDate
		out.StartDate = &d
	}
	return &out
}

// Add inserts a subscription, panicking on duplicate ids; test fixtures only.
func (s *InMemorySubscriptionStore) Add(sub *subscription.Subscription) {
	if err := s.InMemoryStore.Create(context.Background(), sub.ID, copySubscription(sub)); err != nil {
		panic(err)
	}
}

func (s *InMemorySubscriptionStore) ListActive(ctx context.Context) ([]*subscription.Subscription, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	subs, err := s.InMemoryStore.List(ctx, func(_ context.Context, sub *subscription.Subscription) bool {
		return sub.IsActive()
	})
	if err != nil {
		return nil, err
	}

	out := make([]*subscription.Subscription, 0, len(subs))
	for _, sub := range subs {
		out = append(out, copySubscription(sub))
	}
	return out, nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Subscription %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(sub), nil
}
