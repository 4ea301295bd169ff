package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	INR Currency = "INR" // Indian Rupee (local currency)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	AED Currency = "AED" // UAE Dirham
)

// DefaultCurrency is the local currency every ledger total is kept in
const DefaultCurrency = INR

// MoneyPlaces is the number of decimal places amounts are stored with
const MoneyPlaces int32 = 2

var currencySymbols = map[Currency]string{
	INR: "₹",
	USD: "$",
	EUR: "€",
	GBP: "£",
}

// Symbol returns the display symbol, falling back to the code
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c) + " "
}

// IsValid reports whether c is an upper-case ISO 4217 code in use
func (c Currency) IsValid() bool {
	if len(c) != 3 || strings.ToUpper(string(c)) != string(c) {
		return false
	}
	unit, err := currency.ParseISO(string(c))
	return err == nil && unit != currency.XXX
}

// Money is a value object representing monetary amounts
// It is immutable - all operations return new Money instances
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// NewMoneyINR creates Money in the local currency
func NewMoneyINR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: INR}
}

// Zero returns zero money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of two Money values
// Returns error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two Money values
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Convert returns the amount expressed in target at the given rate,
// rounded to storage precision.
func (m Money) Convert(rate decimal.Decimal, target Currency) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, errors.New("exchange rate must be positive")
	}
	if target == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: Round(m.amount.Mul(rate)), currency: target}, nil
}

// Round returns Money rounded to storage precision
func (m Money) Round() Money {
	return Money{amount: Round(m.amount), currency: m.currency}
}

// Equals checks if two Money values are equal
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the plain amount and currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(MoneyPlaces), m.currency)
}

// Display returns the amount grouped for humans with its currency symbol
func (m Money) Display() string {
	return FormatAmount(m.amount, m.currency)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(MoneyPlaces),
		Currency: m.currency,
	})
}

// Round rounds a monetary decimal to storage precision
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

var displayPrinter = message.NewPrinter(language.English)

// FormatAmount renders d with thousands grouping and two decimals,
// e.g. ₹5,000.00.
func FormatAmount(d decimal.Decimal, currency Currency) string {
	return currency.Symbol() + displayPrinter.Sprintf("%.2f", Round(d).InexactFloat64())
}
