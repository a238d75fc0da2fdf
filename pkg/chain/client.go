// Package chain abstracts the distributed ledger behind a transfer-and-balance
// contract. The concrete adapter talks to the platform's signing relayer; the
// rest of the pipeline never sees chain specifics beyond TransferResult.
package chain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrTransferTimeout is returned when a transfer call exceeds its deadline.
// On timeout the on-chain outcome is UNKNOWN, not definitively failed; the
// record keeps this error kind so operators can tell the two apart.
var ErrTransferTimeout = errors.New("chain transfer timed out; on-chain outcome unknown")

// TransferResult carries the outcome of a confirmed on-chain transfer.
type TransferResult struct {
	TxHash      string
	BlockNumber int64
	GasUsed     int64
}

// Client executes token transfers and balance queries against the ledger.
type Client interface {
	// Transfer moves amount of the stablecoin from the account controlled by
	// signingKey to toAddress and waits for confirmation. It may take a long
	// time; implementations must honor ctx cancellation.
	Transfer(ctx context.Context, signingKey, toAddress string, amount decimal.Decimal) (*TransferResult, error)

	// GetBalance returns the authoritative stablecoin balance for an address.
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
}
