package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnvironmentOnly(t *testing.T) {
	t.Setenv("BILLRUN_AIRTABLE_API_KEY", "keyXYZ")
	t.Setenv("BILLRUN_AIRTABLE_BASE_ID", "appABC123")
	t.Setenv("BILLRUN_PENNYLANE_CLIENT_ID", "client-id")
	t.Setenv("BILLRUN_PENNYLANE_CLIENT_SECRET", "client-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "keyXYZ", cfg.Airtable.APIKey)
	assert.Equal(t, "appABC123", cfg.Airtable.BaseID)
	assert.Equal(t, "client-id", cfg.Pennylane.ClientID)
	assert.Equal(t, "client-secret", cfg.Pennylane.ClientSecret)

	// Defaults still apply alongside env-provided secrets.
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)
	assert.Equal(t, "gocardless", cfg.Pennylane.PaymentMethodLabel)
	assert.Equal(t, 3, cfg.Billing.RetryMax)
}

func TestNewConfigEnvOverridesDefault(t *testing.T) {
	t.Setenv("BILLRUN_AIRTABLE_API_KEY", "keyXYZ")
	t.Setenv("BILLRUN_AIRTABLE_BASE_ID", "appABC123")
	t.Setenv("BILLRUN_PENNYLANE_CLIENT_ID", "client-id")
	t.Setenv("BILLRUN_PENNYLANE_CLIENT_SECRET", "client-secret")
	t.Setenv("BILLRUN_BILLING_RETRY_MAX", "5")
	t.Setenv("BILLRUN_PENNYLANE_PAYMENT_METHOD_LABEL", "sepa")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Billing.RetryMax)
	assert.Equal(t, "sepa", cfg.Pennylane.PaymentMethodLabel)
}

func TestNewConfigMissingCredentials(t *testing.T) {
	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidateRejectsEmptySecrets(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Pennylane.ClientSecret = ""
	assert.Error(t, cfg.Validate())
}
