package storage

import (
	"context"

	"github.com/altoke/remit/pkg/models"
)

// WalletStore defines the interface for managing wallets.
type WalletStore interface {
	// GetWalletByUserID retrieves a user's active wallet.
	GetWalletByUserID(ctx context.Context, userID string) (*models.Wallet, error)

	// GetWalletByAddress retrieves a wallet by its ledger address.
	GetWalletByAddress(ctx context.Context, address string) (*models.Wallet, error)

	// SaveWallet upserts a wallet record by identity.
	SaveWallet(ctx context.Context, wallet *models.Wallet) error

	// UpdateWalletBalance persists a new balance snapshot for a wallet. The
	// write is conditional on the supplied version; a concurrent writer wins
	// the race and the caller receives ErrVersionConflict.
	UpdateWalletBalance(ctx context.Context, walletID string, balance models.Balance, version int64) error
}
