package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Preferences holds display-only settings: currency rendering, date
// timezone and the tax rate applied when showing prices. The transaction
// core never reads these; they are passed explicitly to the formatter.
type Preferences struct {
	CurrencySymbol     string  `json:"currency_symbol"`
	CurrencyPosition   string  `json:"currency_position"` // "before" or "after"
	DecimalSeparator   string  `json:"decimal_separator"`
	ThousandsSeparator string  `json:"thousands_separator"`
	DecimalPlaces      int     `json:"decimal_places"`
	Timezone           string  `json:"timezone"`
	TaxRatePct         float64 `json:"tax_rate_pct"`
	Appearance         string  `json:"appearance"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		CurrencySymbol:     "$",
		CurrencyPosition:   "before",
		DecimalSeparator:   ".",
		ThousandsSeparator: ",",
		DecimalPlaces:      2,
		Timezone:           "UTC",
		TaxRatePct:         21,
		Appearance:         "System",
	}
}

// LoadPreferences reads the preferences file, fills missing fields with
// defaults and validates once. A missing file is created with defaults.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := SavePreferences(path, prefs); werr != nil {
			return prefs, fmt.Errorf("write default preferences: %w", werr)
		}
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences: %w", err)
	}

	if err := json.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parse preferences: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return prefs, err
	}
	return prefs, nil
}

func SavePreferences(path string, prefs Preferences) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (p Preferences) Validate() error {
	if p.CurrencyPosition != "before" && p.CurrencyPosition != "after" {
		return fmt.Errorf("invalid currency_position %q", p.CurrencyPosition)
	}
	if p.DecimalSeparator == "" {
		return fmt.Errorf("decimal_separator must not be empty")
	}
	if p.DecimalSeparator == p.ThousandsSeparator {
		return fmt.Errorf("decimal_separator and thousands_separator must differ")
	}
	if p.DecimalPlaces < 0 || p.DecimalPlaces > 6 {
		return fmt.Errorf("decimal_places must be between 0 and 6, got %d", p.DecimalPlaces)
	}
	if p.TaxRatePct < 0 || p.TaxRatePct > 100 {
		return fmt.Errorf("tax_rate_pct must be between 0 and 100, got %v", p.TaxRatePct)
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
	}
	return nil
}
