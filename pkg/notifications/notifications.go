// Package notifications delivers transaction events to interested parties.
// Delivery is fire-and-forget: a notification failure never changes the
// outcome or persisted status of a transfer.
package notifications

import (
	"context"

	"github.com/altoke/remit/pkg/models"
)

// Notifier publishes a notification for a transaction that reached a terminal state.
type Notifier interface {
	NotifyTransaction(ctx context.Context, tx *models.Transaction) error
}

// Event is the payload placed on the notification queue for downstream
// dispatchers (email, webhook).
type Event struct {
	TransactionID string `json:"transaction_id"`
	FromUserID    string `json:"from_user_id"`
	ToUserID      string `json:"to_user_id,omitempty"`
	ToAddress     string `json:"to_address"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	ChainTxHash   string `json:"chain_tx_hash,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	Description   string `json:"description,omitempty"`
}

// NewEvent builds the queue payload for a transaction.
func NewEvent(tx *models.Transaction) Event {
	return Event{
		TransactionID: tx.ID,
		FromUserID:    tx.FromUserID,
		ToUserID:      tx.ToUserID,
		ToAddress:     tx.ToAddress,
		Status:        string(tx.Status),
		Amount:        tx.Amount.String(),
		Currency:      tx.Currency,
		ChainTxHash:   tx.ChainTxHash,
		ErrorMessage:  tx.ErrorMessage,
		Description:   tx.Description,
	}
}

// NoOpNotifier discards all notifications.
type NoOpNotifier struct{}

// NotifyTransaction does nothing.
func (n *NoOpNotifier) NotifyTransaction(ctx context.Context, tx *models.Transaction) error {
	return nil
}
