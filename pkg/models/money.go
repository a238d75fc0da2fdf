package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency codes used across the platform.
const (
	CurrencyUSDC = "USDC"
	CurrencyUSD  = "USD"
	CurrencyPEN  = "PEN"
	CurrencyETH  = "ETH"
)

// ErrNegativeAmount is returned when constructing Money with a negative value.
var ErrNegativeAmount = errors.New("money value cannot be negative")

// ErrInsufficientFunds is returned when a subtraction would produce a negative amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// CurrencyMismatchError is returned when arithmetic or comparison is attempted
// across two different currencies.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("cannot operate on different currencies: %s vs %s", e.Left, e.Right)
}

// Money is an immutable amount tagged with a currency. Every operation returns
// a new value; a Money is never mutated in place.
type Money struct {
	Value    decimal.Decimal
	Currency string
}

// NewMoney constructs a Money. Negative values are rejected.
func NewMoney(value decimal.Decimal, currency string) (Money, error) {
	if value.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{Value: value, Currency: currency}, nil
}

// NewMoneyFromFloat is a convenience constructor for callers holding float input.
func NewMoneyFromFloat(value float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(value), currency)
}

// USDC constructs a stablecoin-denominated Money.
func USDC(value float64) (Money, error) {
	return NewMoneyFromFloat(value, CurrencyUSDC)
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Value: m.Value.Add(other.Value), Currency: m.Currency}, nil
}

// Sub returns the difference of two amounts in the same currency. A result
// below zero is an error, never a negative Money.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.Value.Sub(other.Value)
	if result.IsNegative() {
		return Money{}, ErrInsufficientFunds
	}
	return Money{Value: result, Currency: m.Currency}, nil
}

// Cmp compares two amounts in the same currency. It returns -1, 0 or 1.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.Value.Cmp(other.Value), nil
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	return c > 0, err
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	return c < 0, err
}

// Equal reports whether two amounts in the same currency are equal.
func (m Money) Equal(other Money) (bool, error) {
	c, err := m.Cmp(other)
	return c == 0, err
}

// Format renders the amount for display. Not used by the transfer pipeline itself.
func (m Money) Format() string {
	switch m.Currency {
	case CurrencyPEN:
		return fmt.Sprintf("S/ %s", m.Value.StringFixed(2))
	case CurrencyUSD, CurrencyUSDC:
		return fmt.Sprintf("$%s", m.Value.StringFixed(2))
	default:
		return fmt.Sprintf("%s %s", m.Value.StringFixed(4), m.Currency)
	}
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return &CurrencyMismatchError{Left: m.Currency, Right: other.Currency}
	}
	return nil
}
