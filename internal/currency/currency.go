// Package currency resolves ISO-4217-like codes to display symbols.
// Pure lookup with no failure mode: unknown codes fall back to "$".
package currency

import "github.com/Rhymond/go-money"

const fallbackSymbol = "$"

// Symbol returns the display symbol for a currency code ("USD" → "$",
// "LKR" → "රු"). Unknown or empty codes resolve to the fallback symbol.
func Symbol(code string) string {
	c := money.GetCurrency(code)
	if c == nil || c.Grapheme == "" {
		return fallbackSymbol
	}
	return c.Grapheme
}
