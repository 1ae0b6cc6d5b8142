package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipbridge/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DHL_USE_MOCK", "true")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, "https://xmlpi-ea.dhl.com/XMLShippingServlet", cfg.DHLEndpoint)
	assert.Equal(t, "8X4_A4_PDF", cfg.DHLLabelTemplate)
	assert.Equal(t, 30*time.Second, cfg.DHLTimeout)
	assert.True(t, cfg.DHLEnabled)
	assert.Equal(t, "shipbridge", cfg.ServiceName)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DHL_SITE_ID", "site")
	t.Setenv("DHL_PASSWORD", "secret")
	t.Setenv("DHL_ACCOUNT_NUMBER", "123456789")
	t.Setenv("DHL_ENDPOINT", "https://xmlpitest-ea.dhl.com/XMLShippingServlet")
	t.Setenv("DHL_TIMEOUT", "5s")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "site", cfg.DHLSiteID)
	assert.Equal(t, "https://xmlpitest-ea.dhl.com/XMLShippingServlet", cfg.DHLEndpoint)
	assert.Equal(t, 5*time.Second, cfg.DHLTimeout)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("DHL_ENABLED", "true")
	t.Setenv("DHL_USE_MOCK", "false")
	t.Setenv("DHL_SITE_ID", "")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DHL_USE_MOCK", "true")
	t.Setenv("PORT", "not-a-number")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestConfig_Attributes(t *testing.T) {
	cfg := &config.Config{ServiceName: "shipbridge", Version: "1.2.3", DHLEnabled: true}

	attrs := cfg.Attributes()

	require.NotEmpty(t, attrs)
	assert.Equal(t, "service.name", string(attrs[0].Key))
	assert.Equal(t, "shipbridge", attrs[0].Value.AsString())
}
