// Package money defines the monetary value types used by the budget engine.
//
// Two representations exist on purpose:
//   - Local: an amount still expressed in a single currency, before conversion.
//   - Bimonetario: the ARS + USD pair produced by applying the exchange rate.
//
// There is no operation that converts a Bimonetario again, so "conversion is
// applied exactly once" holds at the type level rather than by convention.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	CurrencyARS = "ARS"
	CurrencyUSD = "USD"
)

var (
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive")
	ErrUnsupportedCurrency = errors.New("unsupported currency code")
)

// Round2 applies the engine-wide rounding rule: half-up at currency precision
// (2 decimals). Every aggregation boundary goes through this helper so the
// rule cannot drift between components. Amounts are never negative here, so
// half-away-from-zero and half-up coincide.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Local is a monetary amount in a single currency, not yet converted.
type Local struct {
	Amount   decimal.Decimal
	Currency string
}

func NewLocal(amount decimal.Decimal, currency string) Local {
	return Local{Amount: amount, Currency: currency}
}

// Bimonetario is an amount expressed in both reporting currencies. Values are
// rounded half-up at 2 decimals on construction and after every arithmetic
// step.
type Bimonetario struct {
	ARS decimal.Decimal `json:"ars"`
	USD decimal.Decimal `json:"usd"`
}

// Convert applies the exchange rate (ARS per USD) to a local amount. It is the
// only way to obtain a Bimonetario from a Local value.
func Convert(l Local, exchangeRate decimal.Decimal) (Bimonetario, error) {
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return Bimonetario{}, ErrInvalidExchangeRate
	}
	switch l.Currency {
	case CurrencyARS:
		return Bimonetario{
			ARS: Round2(l.Amount),
			USD: Round2(l.Amount.Div(exchangeRate)),
		}, nil
	case CurrencyUSD:
		return Bimonetario{
			ARS: Round2(l.Amount.Mul(exchangeRate)),
			USD: Round2(l.Amount),
		}, nil
	default:
		return Bimonetario{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, l.Currency)
	}
}

// ToARS normalizes a local amount into ARS. Used when a coefficient is priced
// in USD and needs to join an ARS accumulation; distinct from Convert, which
// produces the final two-currency figure.
func ToARS(l Local, exchangeRate decimal.Decimal) (decimal.Decimal, error) {
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, ErrInvalidExchangeRate
	}
	switch l.Currency {
	case CurrencyARS:
		return l.Amount, nil
	case CurrencyUSD:
		return l.Amount.Mul(exchangeRate), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, l.Currency)
	}
}

func (b Bimonetario) Add(o Bimonetario) Bimonetario {
	return Bimonetario{ARS: b.ARS.Add(o.ARS), USD: b.USD.Add(o.USD)}
}

// MulRate multiplies both legs by a rate and rounds each result. Used by the
// totalizer for overhead/profit/tax steps on already-converted amounts.
func (b Bimonetario) MulRate(rate decimal.Decimal) Bimonetario {
	return Bimonetario{
		ARS: Round2(b.ARS.Mul(rate)),
		USD: Round2(b.USD.Mul(rate)),
	}
}

// DivBy divides both legs by a nonzero divisor and rounds each result.
func (b Bimonetario) DivBy(divisor decimal.Decimal) Bimonetario {
	return Bimonetario{
		ARS: Round2(b.ARS.Div(divisor)),
		USD: Round2(b.USD.Div(divisor)),
	}
}

func (b Bimonetario) Equal(o Bimonetario) bool {
	return b.ARS.Equal(o.ARS) && b.USD.Equal(o.USD)
}
