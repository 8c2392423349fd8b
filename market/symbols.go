// Package market holds instrument metadata the journal uses to fill in
// what a trader leaves out: asset class, pip size and P/L in the account
// currency.
package market

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

type Symbol struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
	AssetClass    journal.AssetClass
}

func fx(base, quote string, pipLocation int) Symbol {
	return Symbol{
		Name:          base + quote,
		BaseCurrency:  base,
		QuoteCurrency: quote,
		PipLocation:   pipLocation,
		AssetClass:    journal.Forex,
	}
}

var Symbols = map[string]Symbol{
	"EURUSD": fx("EUR", "USD", -4),
	"GBPUSD": fx("GBP", "USD", -4),
	"AUDUSD": fx("AUD", "USD", -4),
	"NZDUSD": fx("NZD", "USD", -4),
	"USDCHF": fx("USD", "CHF", -4),
	"USDCAD": fx("USD", "CAD", -4),
	"EURGBP": fx("EUR", "GBP", -4),
	"USDJPY": fx("USD", "JPY", -2),
	"EURJPY": fx("EUR", "JPY", -2),
	"GBPJPY": fx("GBP", "JPY", -2),

	"XAUUSD": {Name: "XAUUSD", BaseCurrency: "XAU", QuoteCurrency: "USD", PipLocation: -1, AssetClass: journal.Commodities},
	"XAGUSD": {Name: "XAGUSD", BaseCurrency: "XAG", QuoteCurrency: "USD", PipLocation: -2, AssetClass: journal.Commodities},
	"WTI":    {Name: "WTI", QuoteCurrency: "USD", PipLocation: -2, AssetClass: journal.Commodities},

	"BTCUSD": {Name: "BTCUSD", BaseCurrency: "BTC", QuoteCurrency: "USD", PipLocation: 0, AssetClass: journal.Crypto},
	"ETHUSD": {Name: "ETHUSD", BaseCurrency: "ETH", QuoteCurrency: "USD", PipLocation: -1, AssetClass: journal.Crypto},

	"US30":   {Name: "US30", QuoteCurrency: "USD", PipLocation: 0, AssetClass: journal.Indices},
	"NAS100": {Name: "NAS100", QuoteCurrency: "USD", PipLocation: 0, AssetClass: journal.Indices},
	"SPX500": {Name: "SPX500", QuoteCurrency: "USD", PipLocation: -1, AssetClass: journal.Indices},
	"GER40":  {Name: "GER40", QuoteCurrency: "EUR", PipLocation: 0, AssetClass: journal.Indices},
}

// Normalize maps broker spellings such as "EUR_USD" or "eur/usd" to the
// journal's form, "EURUSD".
func Normalize(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '/', '-', ' ':
			return -1
		}
		return r
	}, strings.ToUpper(symbol))
}

func Lookup(symbol string) (Symbol, bool) {
	s, ok := Symbols[Normalize(symbol)]
	return s, ok
}

func (s Symbol) PipSize() float64 {
	return math.Pow10(s.PipLocation)
}

// Pips converts a price distance to pips.
func (s Symbol) Pips(distance float64) float64 {
	return distance / s.PipSize()
}

// QuoteToAccountRate converts quote currency amounts to the account
// currency using the trade's own price. Crosses with neither leg in the
// account currency need a second rate and are not supported.
func (s Symbol) QuoteToAccountRate(accountCurrency string, price float64) (float64, error) {
	// Case 1: quote currency == account currency (EURUSD, XAUUSD, etc.)
	if s.QuoteCurrency == accountCurrency {
		return 1.0, nil
	}

	// Case 2: account currency is base (USDJPY with a USD account)
	if s.BaseCurrency == accountCurrency && price > 0 {
		return 1.0 / price, nil
	}

	return 0, fmt.Errorf("cross conversion not implemented for %s → %s", s.QuoteCurrency, accountCurrency)
}

// PnL is the gross result of size units from entry to exit, in the
// account currency.
func (s Symbol) PnL(dir journal.Direction, size, entry, exit float64, accountCurrency string) (float64, error) {
	rate, err := s.QuoteToAccountRate(accountCurrency, exit)
	if err != nil {
		return 0, err
	}
	side := 1.0
	if dir == journal.Short {
		side = -1
	}
	return side * size * (exit - entry) * rate, nil
}
