package subscription

import (
	"context"
)

// Repository defines the interface for subscription read operations. The
// datastore is the source of truth; this job never creates or deletes
// subscriptions.
type Repository interface {
	// ListActive retrieves all subscriptions whose status is active
	ListActive(ctx context.Context) ([]*Subscription, error)

	// Get retrieves a subscription by its record id
	Get(ctx context.Context, id string) (*Subscription, error)
}
