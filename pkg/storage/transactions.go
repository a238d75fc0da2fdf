package storage

import (
	"context"
	"time"

	"github.com/altoke/remit/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// GetTransactionByChainHash retrieves a transaction by its on-chain hash.
	GetTransactionByChainHash(ctx context.Context, chainTxHash string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves a user's most recent transactions,
	// newest first, up to limit. A limit of 0 applies the store default.
	ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error)

	// GetStuckTransactions retrieves transactions that have sat in the pending
	// state for longer than maxAge. Used by the reconciliation sweep.
	GetStuckTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for persisting transaction snapshots.
// Writes are atomic at the single-record level; no cross-record transaction is
// assumed by callers.
type TransactionWriter interface {
	// SaveTransaction persists a newly created transaction record.
	SaveTransaction(ctx context.Context, tx *models.Transaction) error

	// UpdateTransaction persists a new snapshot of an existing transaction.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// CancelTransaction moves a pending transaction to cancelled. It fails
	// with ErrTransactionNotCancellable once a chain attempt is underway.
	CancelTransaction(ctx context.Context, txID string) error
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
