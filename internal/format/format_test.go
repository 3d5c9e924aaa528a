package format

import (
	"testing"
	"time"

	"despensa-backend/internal/config"

	"github.com/stretchr/testify/require"
)

func TestAmountDefaults(t *testing.T) {
	f := New(config.DefaultPreferences())

	require.Equal(t, "$1,234,567.50", f.Amount(1234567.5))
	require.Equal(t, "$0.00", f.Amount(0))
	require.Equal(t, "$-1,500.00", f.Amount(-1500))
	require.Equal(t, "$999.99", f.Amount(999.99))
}

func TestAmountEuropeanStyle(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.CurrencySymbol = "€"
	prefs.CurrencyPosition = "after"
	prefs.DecimalSeparator = ","
	prefs.ThousandsSeparator = "."
	f := New(prefs)

	require.Equal(t, "1.234,50€", f.Amount(1234.5))
}

func TestAmountNoDecimals(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.DecimalPlaces = 0
	f := New(prefs)

	require.Equal(t, "$1,235", f.Amount(1234.6))
}

func TestPriceWithTax(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.TaxRatePct = 21
	f := New(prefs)

	require.InDelta(t, 121.0, f.PriceWithTax(100), 1e-9)

	prefs.TaxRatePct = 0
	f = New(prefs)
	require.InDelta(t, 100.0, f.PriceWithTax(100), 1e-9)
}

func TestDateUsesConfiguredTimezone(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.Timezone = "America/Argentina/Buenos_Aires"
	f := New(prefs)

	// UTC-3, no DST
	ts := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-08-28 09:00", f.Date(ts))
}
