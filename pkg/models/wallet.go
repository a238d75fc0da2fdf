package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Network identifies a supported ledger network.
type Network string

const (
	NetworkBase        Network = "base"
	NetworkBaseSepolia Network = "base-sepolia"
)

// Asset keys for the per-asset balance snapshot on a wallet.
const (
	AssetGas        = "gas"
	AssetStablecoin = "stablecoin"
)

var evmAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether addr is syntactically valid for the given network.
func ValidAddress(network Network, addr string) bool {
	switch network {
	case NetworkBase, NetworkBaseSepolia:
		return evmAddressPattern.MatchString(addr)
	default:
		return false
	}
}

// Balance is a wallet's last-synced per-asset balance snapshot. It is a cache
// of the authoritative on-chain figures, never a ledger of record.
type Balance struct {
	Gas        decimal.Decimal `json:"gas"`
	Stablecoin decimal.Decimal `json:"stablecoin"`
}

// Get returns the balance for an asset key. Unknown keys return zero.
func (b Balance) Get(asset string) decimal.Decimal {
	switch asset {
	case AssetGas:
		return b.Gas
	case AssetStablecoin:
		return b.Stablecoin
	default:
		return decimal.Zero
	}
}

// Wallet is a user's custodial account on the target ledger. A wallet is
// created once at onboarding and only ever deactivated, never deleted.
type Wallet struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Address             string    `json:"address"`
	EncryptedSigningKey string    `json:"-"` // absent for externally-custodied wallets
	Balance             Balance   `json:"balance"`
	IsActive            bool      `json:"is_active"`
	Network             Network   `json:"network"`
	Version             int64     `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewWallet constructs an active wallet for a user.
func NewWallet(userID, address, encryptedSigningKey string, network Network) *Wallet {
	now := time.Now()
	return &Wallet{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Address:             address,
		EncryptedSigningKey: encryptedSigningKey,
		IsActive:            true,
		Network:             network,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// HasEnoughBalance reports whether the last-synced snapshot for the asset
// covers the amount. This is a point-in-time check against a cached figure,
// not a reservation; the ledger remains the authority at execution time.
func (w *Wallet) HasEnoughBalance(amount decimal.Decimal, asset string) bool {
	return w.Balance.Get(asset).GreaterThanOrEqual(amount)
}

// TruncatedAddress renders the address as 0x1234...abcd for display.
func (w *Wallet) TruncatedAddress() string {
	if len(w.Address) < 10 {
		return w.Address
	}
	return w.Address[:6] + "..." + w.Address[len(w.Address)-4:]
}
