package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus defines the possible states of a transfer attempt.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// TransactionType classifies a value movement.
type TransactionType string

const (
	TypeSend    TransactionType = "send"
	TypeReceive TransactionType = "receive"
	TypeBuy     TransactionType = "buy"
	TypeSell    TransactionType = "sell"
)

// ErrInvalidStateTransition signals a transition attempted from a state that
// does not allow it. This is a defect in the calling code, not a user error.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// Confirmation carries chain-provided metadata about a confirmed transfer.
type Confirmation struct {
	BlockNumber int64 `json:"block_number"`
	GasUsed     int64 `json:"gas_used"`
}

// Transaction represents one attempted value movement. Transactions have
// value-object semantics: every transition returns a new snapshot and never
// mutates the receiver, so the store always persists a coherent record.
type Transaction struct {
	ID              string            `json:"id"`
	FromUserID      string            `json:"from_user_id"`
	ToUserID        string            `json:"to_user_id,omitempty"`
	ToAddress       string            `json:"to_address"`
	Type            TransactionType   `json:"type"`
	Status          TransactionStatus `json:"status"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        string            `json:"currency"`
	ConvertedAmount *decimal.Decimal  `json:"converted_amount,omitempty"`
	ExchangeRate    *decimal.Decimal  `json:"exchange_rate,omitempty"`
	FeeAmount       decimal.Decimal   `json:"fee_amount"`
	PlatformFee     decimal.Decimal   `json:"platform_fee"`
	ChainTxHash     string            `json:"chain_tx_hash,omitempty"`
	Confirmation    *Confirmation     `json:"confirmation,omitempty"`
	Description     string            `json:"description,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewTransactionParams holds the caller-supplied fields for a new transfer attempt.
type NewTransactionParams struct {
	FromUserID   string
	ToUserID     string
	ToAddress    string
	Type         TransactionType
	Amount       Money
	ExchangeRate *decimal.Decimal
	Description  string
}

// NewTransaction creates a transfer attempt in the pending state. When an
// exchange rate is supplied the local-currency equivalent is computed eagerly;
// it is a pure multiplication, no external call. Fees are populated by policy
// elsewhere and start at zero.
func NewTransaction(p NewTransactionParams) *Transaction {
	now := time.Now()
	txType := p.Type
	if txType == "" {
		txType = TypeSend
	}

	var converted *decimal.Decimal
	if p.ExchangeRate != nil {
		c := p.Amount.Value.Mul(*p.ExchangeRate)
		converted = &c
	}

	return &Transaction{
		ID:              uuid.New().String(),
		FromUserID:      p.FromUserID,
		ToUserID:        p.ToUserID,
		ToAddress:       p.ToAddress,
		Type:            txType,
		Status:          StatusPending,
		Amount:          p.Amount.Value,
		Currency:        p.Amount.Currency,
		ConvertedAmount: converted,
		ExchangeRate:    p.ExchangeRate,
		FeeAmount:       decimal.Zero,
		PlatformFee:     decimal.Zero,
		Description:     p.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AmountMoney returns the principal as a Money value.
func (t *Transaction) AmountMoney() Money {
	return Money{Value: t.Amount, Currency: t.Currency}
}

// CanBeCancelled reports whether the transfer can still be cancelled, i.e. no
// chain attempt has been recorded yet.
func (t *Transaction) CanBeCancelled() bool {
	return t.Status == StatusPending
}

// MarkAsProcessing returns a processing snapshot. Valid only from pending.
func (t *Transaction) MarkAsProcessing() (*Transaction, error) {
	if t.Status != StatusPending {
		return nil, fmt.Errorf("%w: only pending transactions can be set to processing (was %s)", ErrInvalidStateTransition, t.Status)
	}
	next := t.clone()
	next.Status = StatusProcessing
	next.UpdatedAt = time.Now()
	return next, nil
}

// MarkAsCompleted returns a completed snapshot carrying the chain transaction
// hash and confirmation metadata. Valid only from pending or processing.
func (t *Transaction) MarkAsCompleted(chainTxHash string, confirmation *Confirmation) (*Transaction, error) {
	if t.Status != StatusPending && t.Status != StatusProcessing {
		return nil, fmt.Errorf("%w: only pending or processing transactions can be completed (was %s)", ErrInvalidStateTransition, t.Status)
	}
	now := time.Now()
	next := t.clone()
	next.Status = StatusCompleted
	next.ChainTxHash = chainTxHash
	next.Confirmation = confirmation
	next.CompletedAt = &now
	next.UpdatedAt = now
	return next, nil
}

// MarkAsFailed returns a failed snapshot carrying the error message. Valid
// from any non-terminal state.
func (t *Transaction) MarkAsFailed(errorMessage string) (*Transaction, error) {
	if t.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot fail a transaction in terminal state %s", ErrInvalidStateTransition, t.Status)
	}
	next := t.clone()
	next.Status = StatusFailed
	next.ErrorMessage = errorMessage
	next.UpdatedAt = time.Now()
	return next, nil
}

// MarkAsCancelled returns a cancelled snapshot. Valid only from pending.
func (t *Transaction) MarkAsCancelled() (*Transaction, error) {
	if !t.CanBeCancelled() {
		return nil, fmt.Errorf("%w: only pending transactions can be cancelled (was %s)", ErrInvalidStateTransition, t.Status)
	}
	next := t.clone()
	next.Status = StatusCancelled
	next.UpdatedAt = time.Now()
	return next, nil
}

func (t *Transaction) clone() *Transaction {
	next := *t
	if t.ConvertedAmount != nil {
		c := *t.ConvertedAmount
		next.ConvertedAmount = &c
	}
	if t.ExchangeRate != nil {
		r := *t.ExchangeRate
		next.ExchangeRate = &r
	}
	if t.Confirmation != nil {
		conf := *t.Confirmation
		next.Confirmation = &conf
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		next.CompletedAt = &at
	}
	return &next
}
