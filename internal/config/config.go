package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/billrun/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logging   LoggingConfig   `validate:"required"`
	Airtable  AirtableConfig  `validate:"required"`
	Pennylane PennylaneConfig `validate:"required"`
	Billing   BillingConfig   `validate:"required"`
	Sentry    SentryConfig
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// AirtableConfig points at the base holding the hand-maintained subscription
// and service tables.
type AirtableConfig struct {
	APIKey             string `mapstructure:"api_key" validate:"required"`
	BaseID             string `mapstructure:"base_id" validate:"required"`
	BaseURL            string `mapstructure:"base_url" validate:"required,url"`
	SubscriptionsTable string `mapstructure:"subscriptions_table" validate:"required"`
	ServicesTable      string `mapstructure:"services_table" validate:"required"`
}

// PennylaneConfig holds the OAuth client-credentials pair for the billing API.
type PennylaneConfig struct {
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
	// PaymentMethodLabel is matched case-insensitively against the labels of
	// enabled payment methods to pick the direct-debit one.
	PaymentMethodLabel string `mapstructure:"payment_method_label" validate:"required"`
}

type BillingConfig struct {
	// RecurringCategory is the service category tag eligible for automated
	// invoicing.
	RecurringCategory string `mapstructure:"recurring_category" validate:"required"`
	// DefaultTaxRate is applied when a service record has no usable tax rate.
	DefaultTaxRate   float64 `mapstructure:"default_tax_rate" validate:"gte=0"`
	RetryMax         int     `mapstructure:"retry_max" validate:"gte=0"`
	RetryWaitSeconds int     `mapstructure:"retry_wait_seconds" validate:"gte=0"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds" validate:"gt=0"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billrun")

	v.SetEnvPrefix("BILLRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)
	bindCredentialEnv(v)

	// Config file is optional; env vars alone are enough in production.
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("airtable.base_url", "https://api.airtable.com/v0")
	v.SetDefault("airtable.subscriptions_table", "Subscriptions")
	v.SetDefault("airtable.services_table", "Services")
	v.SetDefault("pennylane.base_url", "https://app.pennylane.com/api/external/v1")
	v.SetDefault("pennylane.payment_method_label", "gocardless")
	v.SetDefault("billing.recurring_category", "recurrente")
	v.SetDefault("billing.default_tax_rate", 20.0)
	v.SetDefault("billing.retry_max", 3)
	v.SetDefault("billing.retry_wait_seconds", 2)
	v.SetDefault("billing.timeout_seconds", 30)
	v.SetDefault("sentry.sample_rate", 1.0)
}

// bindCredentialEnv registers the secret-bearing keys with viper. AutomaticEnv
// only resolves keys viper already knows about, and secrets deliberately have
// no default, so without an explicit binding an env-only deployment would
// unmarshal them as empty.
func bindCredentialEnv(v *viper.Viper) {
	for _, key := range []string{
		"airtable.api_key",
		"airtable.base_id",
		"pennylane.client_id",
		"pennylane.client_secret",
		"sentry.enabled",
		"sentry.dsn",
		"sentry.environment",
	} {
		// Single-argument BindEnv honours the prefix and key replacer.
		_ = v.BindEnv(key)
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func (c BillingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c BillingConfig) RetryWait() time.Duration {
	return time.Duration(c.RetryWaitSeconds) * time.Second
}

// GetDefaultConfig returns a configuration suitable for tests and local
// scripts, bypassing viper entirely.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: types.LogLevelDebug},
		Airtable: AirtableConfig{
			APIKey:             "test",
			BaseID:             "appTEST",
			BaseURL:            "https://api.airtable.com/v0",
			SubscriptionsTable: "Subscriptions",
			ServicesTable:      "Services",
		},
		Pennylane: PennylaneConfig{
			BaseURL:            "https://app.pennylane.com/api/external/v1",
			ClientID:           "test",
			ClientSecret:       "test",
			PaymentMethodLabel: "gocardless",
		},
		Billing: BillingConfig{
			RecurringCategory: "recurrente",
			DefaultTaxRate:    20.0,
			RetryMax:          3,
			RetryWaitSeconds:  0,
			TimeoutSeconds:    30,
		},
	}
}
