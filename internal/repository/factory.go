package repository

import (
	"github.com/flexprice/billrun/internal/airtable"
	"github.com/flexprice/billrun/internal/cache"
	"github.com/flexprice/billrun/internal/config"
	"github.com/flexprice/billrun/internal/domain/service"
	"github.com/flexprice/billrun/internal/domain/subscription"
	"github.com/flexprice/billrun/internal/logger"
	airtableRepo "github.com/flexprice/billrun/internal/repository/airtable"
)

func NewSubscriptionRepository(client airtable.Client, cfg *config.Configuration, logger *logger.Logger) subscription.Repository {
	return airtableRepo.NewSubscriptionRepository(client, cfg.Airtable.SubscriptionsTable, logger)
}

func NewServiceRepository(client airtable.Client, cfg *config.Configuration, c cache.Cache, logger *logger.Logger) service.Repository {
	return airtableRepo.NewServiceRepository(client, cfg.Airtable.ServicesTable, c, logger)
}
