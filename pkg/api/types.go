// Package api holds the wire models for the HTTP surface. These are distinct
// from the domain models so the persisted shapes can evolve without breaking
// clients.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewTransfer is the request body for scheduling a transfer.
type NewTransfer struct {
	FromUserId   string  `json:"from_user_id"`
	ToUserId     *string `json:"to_user_id,omitempty"`
	ToAddress    string  `json:"to_address"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency,omitempty"`
	ExchangeRate *string `json:"exchange_rate,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// TransferReceipt is returned when a transfer confirms.
type TransferReceipt struct {
	TransactionId openapi_types.UUID `json:"transaction_id"`
	ChainTxHash   string             `json:"chain_tx_hash"`
}

// Transfer is the API representation of a transaction record.
type Transfer struct {
	Id              openapi_types.UUID `json:"id"`
	FromUserId      string             `json:"from_user_id"`
	ToUserId        *string            `json:"to_user_id,omitempty"`
	ToAddress       string             `json:"to_address"`
	Type            string             `json:"type"`
	Status          string             `json:"status"`
	Amount          string             `json:"amount"`
	Currency        string             `json:"currency"`
	ConvertedAmount *string            `json:"converted_amount,omitempty"`
	ExchangeRate    *string            `json:"exchange_rate,omitempty"`
	FeeAmount       string             `json:"fee_amount"`
	PlatformFee     string             `json:"platform_fee"`
	ChainTxHash     *string            `json:"chain_tx_hash,omitempty"`
	Description     *string            `json:"description,omitempty"`
	ErrorMessage    *string            `json:"error_message,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
}

// NewWallet is the request body for onboarding a custodial wallet.
type NewWallet struct {
	UserId              string              `json:"user_id"`
	Address             string              `json:"address"`
	EncryptedSigningKey *string             `json:"encrypted_signing_key,omitempty"`
	Network             string              `json:"network"`
	OwnerEmail          *openapi_types.Email `json:"owner_email,omitempty"`
}

// Wallet is the API representation of a wallet. The encrypted key never
// leaves the server.
type Wallet struct {
	Id                openapi_types.UUID `json:"id"`
	UserId            string             `json:"user_id"`
	Address           string             `json:"address"`
	TruncatedAddress  string             `json:"truncated_address"`
	BalanceGas        string             `json:"balance_gas"`
	BalanceStablecoin string             `json:"balance_stablecoin"`
	IsActive          bool               `json:"is_active"`
	Network           string             `json:"network"`
	CreatedAt         time.Time          `json:"created_at"`
}

// Balance is the API representation of a wallet's balance snapshot.
type Balance struct {
	Gas        string `json:"gas"`
	Stablecoin string `json:"stablecoin"`
}
