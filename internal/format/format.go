// Package format renders amounts and dates for display according to the
// loaded preferences. It is passed explicitly to handlers that need it;
// nothing in the transaction core depends on it.
package format

import (
	"strconv"
	"strings"
	"time"

	"despensa-backend/internal/config"
)

type Formatter struct {
	prefs config.Preferences
	loc   *time.Location
}

func New(prefs config.Preferences) Formatter {
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return Formatter{prefs: prefs, loc: loc}
}

// Amount renders v with the configured separators, decimal places and
// currency symbol position.
func (f Formatter) Amount(v float64) string {
	places := f.prefs.DecimalPlaces
	s := strconv.FormatFloat(v, 'f', places, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.prefs.ThousandsSeparator)
		}
		b.WriteRune(d)
	}
	num := b.String()
	if fracPart != "" {
		num += f.prefs.DecimalSeparator + fracPart
	}
	if neg {
		num = "-" + num
	}

	if f.prefs.CurrencyPosition == "after" {
		return num + f.prefs.CurrencySymbol
	}
	return f.prefs.CurrencySymbol + num
}

// PriceWithTax applies the display tax rate. Ledger rows always store the
// pre-tax unit price; tax only appears in rendered output.
func (f Formatter) PriceWithTax(v float64) float64 {
	return v * (1 + f.prefs.TaxRatePct/100)
}

func (f Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format("2006-01-02 15:04")
}
