package airtable

import (
	"context"
	"fmt"

	"github.com/flexprice/billrun/internal/airtable"
	"github.com/flexprice/billrun/internal/domain/subscription"
	"github.com/flexprice/billrun/internal/logger"
	"github.com/flexprice/billrun/internal/types"
)

type subscriptionRepository struct {
	client airtable.Client
	table  string
	logger *logger.Logger
}

// NewSubscriptionRepository builds a subscription.Repository backed by a
// datastore table.
func NewSubscriptionRepository(client airtable.Client, table string, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{
		client: client,
		table:  table,
		logger: logger,
	}
}

func (r *subscriptionRepository) ListActive(ctx context.Context) ([]*subscription.Subscription, error) {
	formula := fmt.Sprintf("{%s} = '%s'", subscription.FieldStatus, types.StatusActive)

	records, err := r.client.ListRecords(ctx, r.table, formula)
	if err != nil {
		return nil, err
	}

	subs := make([]*subscription.Subscription, 0, len(records))
	for _, rec := range records {
		subs = append(subs, subscription.FromRecord(rec.ID, rec.Fields))
	}

	r.logger.Debugw("listed active subscriptions", "count", len(subs))
	return subs, nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	rec, err := r.client.GetRecord(ctx, r.table, id)
	if err != nil {
		return nil, err
	}
	return subscription.FromRecord(rec.ID, rec.Fields), nil
}
