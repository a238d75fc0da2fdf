package dynamodb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/altoke/remit/pkg/models"
)

// Monetary amounts are persisted as decimal strings. DynamoDB number
// attributes and attributevalue cannot round-trip decimal.Decimal directly.
type transactionRecord struct {
	ID              string     `dynamodbav:"id"`
	FromUserID      string     `dynamodbav:"from_user_id"`
	ToUserID        string     `dynamodbav:"to_user_id,omitempty"`
	ToAddress       string     `dynamodbav:"to_address"`
	Type            string     `dynamodbav:"tx_type"`
	Status          string     `dynamodbav:"status"`
	Amount          string     `dynamodbav:"amount"`
	Currency        string     `dynamodbav:"currency"`
	ConvertedAmount string     `dynamodbav:"converted_amount,omitempty"`
	ExchangeRate    string     `dynamodbav:"exchange_rate,omitempty"`
	FeeAmount       string     `dynamodbav:"fee_amount"`
	PlatformFee     string     `dynamodbav:"platform_fee"`
	ChainTxHash     string     `dynamodbav:"chain_tx_hash,omitempty"`
	BlockNumber     *int64     `dynamodbav:"block_number,omitempty"`
	GasUsed         *int64     `dynamodbav:"gas_used,omitempty"`
	Description     string     `dynamodbav:"description,omitempty"`
	ErrorMessage    string     `dynamodbav:"error_message,omitempty"`
	CreatedAt       time.Time  `dynamodbav:"created_at"`
	CompletedAt     *time.Time `dynamodbav:"completed_at,omitempty"`
	UpdatedAt       time.Time  `dynamodbav:"updated_at"`
}

type walletRecord struct {
	ID                  string    `dynamodbav:"id"`
	UserID              string    `dynamodbav:"user_id"`
	Address             string    `dynamodbav:"address"`
	EncryptedSigningKey string    `dynamodbav:"encrypted_signing_key,omitempty"`
	BalanceGas          string    `dynamodbav:"balance_gas"`
	BalanceStablecoin   string    `dynamodbav:"balance_stablecoin"`
	IsActive            bool      `dynamodbav:"is_active"`
	Network             string    `dynamodbav:"network"`
	Version             int64     `dynamodbav:"version"`
	CreatedAt           time.Time `dynamodbav:"created_at"`
	UpdatedAt           time.Time `dynamodbav:"updated_at"`
}

func toTransactionRecord(tx *models.Transaction) transactionRecord {
	rec := transactionRecord{
		ID:           tx.ID,
		FromUserID:   tx.FromUserID,
		ToUserID:     tx.ToUserID,
		ToAddress:    tx.ToAddress,
		Type:         string(tx.Type),
		Status:       string(tx.Status),
		Amount:       tx.Amount.String(),
		Currency:     tx.Currency,
		FeeAmount:    tx.FeeAmount.String(),
		PlatformFee:  tx.PlatformFee.String(),
		ChainTxHash:  tx.ChainTxHash,
		Description:  tx.Description,
		ErrorMessage: tx.ErrorMessage,
		CreatedAt:    tx.CreatedAt,
		CompletedAt:  tx.CompletedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
	if tx.ConvertedAmount != nil {
		rec.ConvertedAmount = tx.ConvertedAmount.String()
	}
	if tx.ExchangeRate != nil {
		rec.ExchangeRate = tx.ExchangeRate.String()
	}
	if tx.Confirmation != nil {
		block := tx.Confirmation.BlockNumber
		gas := tx.Confirmation.GasUsed
		rec.BlockNumber = &block
		rec.GasUsed = &gas
	}
	return rec
}

func (r transactionRecord) toModel() (*models.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", r.Amount, err)
	}
	fee, err := decimal.NewFromString(r.FeeAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fee amount %q: %w", r.FeeAmount, err)
	}
	platformFee, err := decimal.NewFromString(r.PlatformFee)
	if err != nil {
		return nil, fmt.Errorf("failed to parse platform fee %q: %w", r.PlatformFee, err)
	}

	tx := &models.Transaction{
		ID:           r.ID,
		FromUserID:   r.FromUserID,
		ToUserID:     r.ToUserID,
		ToAddress:    r.ToAddress,
		Type:         models.TransactionType(r.Type),
		Status:       models.TransactionStatus(r.Status),
		Amount:       amount,
		Currency:     r.Currency,
		FeeAmount:    fee,
		PlatformFee:  platformFee,
		ChainTxHash:  r.ChainTxHash,
		Description:  r.Description,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		CompletedAt:  r.CompletedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ConvertedAmount != "" {
		converted, err := decimal.NewFromString(r.ConvertedAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse converted amount %q: %w", r.ConvertedAmount, err)
		}
		tx.ConvertedAmount = &converted
	}
	if r.ExchangeRate != "" {
		rate, err := decimal.NewFromString(r.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse exchange rate %q: %w", r.ExchangeRate, err)
		}
		tx.ExchangeRate = &rate
	}
	if r.BlockNumber != nil || r.GasUsed != nil {
		conf := &models.Confirmation{}
		if r.BlockNumber != nil {
			conf.BlockNumber = *r.BlockNumber
		}
		if r.GasUsed != nil {
			conf.GasUsed = *r.GasUsed
		}
		tx.Confirmation = conf
	}
	return tx, nil
}

func toWalletRecord(w *models.Wallet) walletRecord {
	return walletRecord{
		ID:                  w.ID,
		UserID:              w.UserID,
		Address:             w.Address,
		EncryptedSigningKey: w.EncryptedSigningKey,
		BalanceGas:          w.Balance.Gas.String(),
		BalanceStablecoin:   w.Balance.Stablecoin.String(),
		IsActive:            w.IsActive,
		Network:             string(w.Network),
		Version:             w.Version,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}

func (r walletRecord) toModel() (*models.Wallet, error) {
	gas, err := decimal.NewFromString(r.BalanceGas)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gas balance %q: %w", r.BalanceGas, err)
	}
	stablecoin, err := decimal.NewFromString(r.BalanceStablecoin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stablecoin balance %q: %w", r.BalanceStablecoin, err)
	}
	return &models.Wallet{
		ID:                  r.ID,
		UserID:              r.UserID,
		Address:             r.Address,
		EncryptedSigningKey: r.EncryptedSigningKey,
		Balance:             models.Balance{Gas: gas, Stablecoin: stablecoin},
		IsActive:            r.IsActive,
		Network:             models.Network(r.Network),
		Version:             r.Version,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}, nil
}
