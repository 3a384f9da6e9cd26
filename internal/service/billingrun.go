package service

import (
	"context"
	"time"

	"github.com/flexprice/billrun/internal/config"
	domainService "github.com/flexprice/billrun/internal/domain/service"
	"github.com/flexprice/billrun/internal/domain/subscription"
	ierr "github.com/flexprice/billrun/internal/errors"
	"github.com/flexprice/billrun/internal/idempotency"
	"github.com/flexprice/billrun/internal/integration/pennylane"
	"github.com/flexprice/billrun/internal/logger"
	"github.com/flexprice/billrun/internal/types"
	"github.com/flexprice/billrun/internal/validator"
	"github.com/shopspring/decimal"
)

// BillingRunService walks all active subscriptions once, bills the ones due
// today and advances their services' occurrence counters. One instance per
// process; strictly sequential.
type BillingRunService interface {
	Run(ctx context.Context, today time.Time) (*RunSummary, error)
}

// RunSummary is the outcome of one billing run, logged at the end and used
// as the process's only report.
type RunSummary struct {
	RunID             string
	SubscriptionsSeen int
	SubscriptionsDue  int
	ServicesValidated int
	InvoicesGenerated int
	Failures          int
}

type billingRunService struct {
	cfg         *config.Configuration
	logger      *logger.Logger
	subRepo     subscription.Repository
	serviceRepo domainService.Repository
	billing     pennylane.Client
	idempGen    *idempotency.Generator
}

func NewBillingRunService(
	cfg *config.Configuration,
	subRepo subscription.Repository,
	serviceRepo domainService.Repository,
	billing pennylane.Client,
	logger *logger.Logger,
) BillingRunService {
	return &billingRunService{
		cfg:         cfg,
		logger:      logger,
		subRepo:     subRepo,
		serviceRepo: serviceRepo,
		billing:     billing,
		idempGen:    idempotency.NewGenerator(),
	}
}

func (s *billingRunService) Run(ctx context.Context, today time.Time) (*RunSummary, error) {
	summary := &RunSummary{RunID: types.GenerateRunID()}
	log := s.logger.With("run_id", summary.RunID, "run_date", types.DateOnly(today))

	subs, err := s.subRepo.ListActive(ctx)
	if err != nil {
		return summary, ierr.WithError(err).
			WithHint("Could not list active subscriptions").
			Mark(ierr.ErrDatastore)
	}
	summary.SubscriptionsSeen = len(subs)

	if len(subs) == 0 {
		log.Infow("no active subscriptions, nothing to do")
		return summary, nil
	}

	for _, sub := range subs {
		if sub.BillingDay == nil || *sub.BillingDay < 1 || *sub.BillingDay > 31 {
			log.Warnw("subscription has no usable billing day, skipping",
				"subscription_id", sub.ID,
				"billing_day", sub.BillingDay,
			)
			continue
		}

		if !sub.IsDueOn(today) {
			continue
		}
		summary.SubscriptionsDue++

		services := s.fetchValidServices(ctx, log, sub)
		summary.ServicesValidated += len(services)
		if len(services) == 0 {
			log.Infow("due subscription has no billable services",
				"subscription_id", sub.ID,
			)
			continue
		}

		for _, svc := range services {
			if err := s.issueInvoice(ctx, log, sub, svc, today); err != nil {
				summary.Failures++
				log.Errorw("failed to issue invoice, continuing with next service",
					"subscription_id", sub.ID,
					"service_id", svc.ID,
					"error", err,
				)
				continue
			}
			summary.InvoicesGenerated++
		}
	}

	log.Infow("billing run complete",
		"subscriptions_seen", summary.SubscriptionsSeen,
		"subscriptions_due", summary.SubscriptionsDue,
		"services_validated", summary.ServicesValidated,
		"invoices_generated", summary.InvoicesGenerated,
		"failures", summary.Failures,
	)
	return summary, nil
}

// fetchValidServices resolves the subscription's linked services and filters
// them down to the billable ones. A lookup failure on one id never aborts the
// rest.
func (s *billingRunService) fetchValidServices(ctx context.Context, log *logger.Logger, sub *subscription.Subscription) []*domainService.Service {
	valid := make([]*domainService.Service, 0, len(sub.ServiceIDs))

	for _, id := range sub.ServiceIDs {
		svc, err := s.serviceRepo.Get(ctx, id)
		if err != nil {
			log.Warnw("failed to fetch linked service, skipping",
				"subscription_id", sub.ID,
				"service_id", id,
				"error", err,
			)
			continue
		}

		switch {
		case !svc.Active:
			log.Warnw("service is not active, skipping",
				"service_id", svc.ID)
		case svc.Category != s.cfg.Billing.RecurringCategory:
			log.Debugw("service is not in the recurring category, skipping",
				"service_id", svc.ID, "category", svc.Category)
		case svc.CustomerRef != sub.CustomerRef:
			// Ownership guard: a service linked across customers must never
			// be billed to this subscription's customer.
			log.Warnw("service customer reference does not match subscription, skipping",
				"service_id", svc.ID,
				"service_customer_ref", svc.CustomerRef,
				"subscription_customer_ref", sub.CustomerRef,
			)
		case svc.RemainingOccurrences() <= 0:
			log.Infow("service has no remaining billable occurrences, skipping",
				"service_id", svc.ID,
				"total_occurrences", svc.TotalOccurrences,
				"elapsed_months", svc.ElapsedMonths,
			)
		case svc.BillingRef == "":
			log.Warnw("service has no billing-system reference, skipping",
				"service_id", svc.ID)
		default:
			valid = append(valid, svc)
		}
	}

	return valid
}

// issueInvoice creates and finalizes one invoice for one service, configures
// direct-debit collection best-effort, then advances the occurrence counters.
func (s *billingRunService) issueInvoice(ctx context.Context, log *logger.Logger, sub *subscription.Subscription, svc *domainService.Service, today time.Time) error {
	price, ok := svc.Price()
	if !ok {
		return ierr.NewError("service has an unusable unit price").
			WithHintf("Fix the price of service %s in the datastore", svc.ID).
			WithReportableDetails(map[string]any{
				"service_id": svc.ID,
				"unit_price": svc.UnitPrice,
			}).
			Mark(ierr.ErrValidation)
	}

	taxRate := svc.TaxRateOrDefault(decimal.NewFromFloat(s.cfg.Billing.DefaultTaxRate))

	req := &pennylane.CreateInvoiceRequest{
		CustomerRef:       sub.CustomerRef,
		ExternalReference: s.idempGen.RecurringInvoiceKey(svc.ID, types.BillingPeriodKey(today)),
		PaymentChannel:    pennylane.PaymentChannelDirectDebit,
		LineItems: []pennylane.LineItem{
			{
				Label:              svc.Name,
				Quantity:           1,
				UnitPriceBeforeTax: price.String(),
				VatRate:            taxRate.String(),
				ServiceReference:   svc.BillingRef,
			},
		},
	}
	if err := validator.ValidateRequest(req); err != nil {
		return err
	}

	inv, err := s.billing.CreateInvoice(ctx, req)
	if err != nil {
		return err
	}

	date := types.DateOnly(today)
	if _, err := s.billing.FinalizeInvoice(ctx, inv.ID, &pennylane.FinalizeInvoiceRequest{
		Date:     date,
		Deadline: date,
	}); err != nil {
		return err
	}

	log.Infow("invoice issued",
		"subscription_id", sub.ID,
		"service_id", svc.ID,
		"invoice_id", inv.ID,
		"amount", price.String(),
	)

	s.configurePaymentCollection(ctx, log, inv.ID)

	if err := s.decrementOccurrences(ctx, svc.ID); err != nil {
		// The invoice already exists remotely; the counter is now behind by
		// one and needs manual reconciliation.
		log.Errorw("invoice issued but occurrence counters were not updated",
			"service_id", svc.ID,
			"invoice_id", inv.ID,
			"error", err,
		)
	}

	return nil
}

// configurePaymentCollection attaches the direct-debit payment method to the
// invoice. Every failure here is swallowed: the invoice stands regardless.
func (s *billingRunService) configurePaymentCollection(ctx context.Context, log *logger.Logger, invoiceID string) {
	methods, err := s.billing.ListPaymentMethods(ctx)
	if err != nil {
		log.Warnw("could not list payment methods, invoice left without one",
			"invoice_id", invoiceID,
			"error", err,
		)
		return
	}

	method := pennylane.ResolvePaymentMethod(methods, s.cfg.Pennylane.PaymentMethodLabel)
	if method == nil {
		log.Warnw("no enabled payment method found, invoice left without one",
			"invoice_id", invoiceID,
			"label", s.cfg.Pennylane.PaymentMethodLabel,
		)
		return
	}

	if err := s.billing.AttachPaymentMethod(ctx, invoiceID, method.ID); err != nil {
		log.Warnw("failed to attach payment method, invoice stands without it",
			"invoice_id", invoiceID,
			"payment_method_id", method.ID,
			"error", err,
		)
	}
}

// decrementOccurrences re-reads the service so counters are advanced from
// the datastore's current state, not from the values validated earlier in
// the run.
func (s *billingRunService) decrementOccurrences(ctx context.Context, serviceID string) error {
	fresh, err := s.serviceRepo.GetLatest(ctx, serviceID)
	if err != nil {
		return err
	}

	elapsed, remaining := domainService.NextOccurrenceCounters(fresh)
	return s.serviceRepo.UpdateOccurrences(ctx, serviceID, elapsed, remaining)
}
