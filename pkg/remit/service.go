// Package remit drives one remittance attempt from request to terminal,
// persisted state. The transaction record is written before any chain
// interaction and always ends in exactly one terminal write; the wallet
// balance is only ever written from the authoritative on-chain figure, never
// decremented optimistically.
package remit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/altoke/remit/pkg/chain"
	"github.com/altoke/remit/pkg/keystore"
	"github.com/altoke/remit/pkg/models"
	"github.com/altoke/remit/pkg/notifications"
	"github.com/altoke/remit/pkg/storage"
)

// Service orchestrates peer-to-peer stablecoin transfers. All collaborators
// are injected; the service holds no state across calls.
type Service struct {
	transactions storage.TransactionStore
	wallets      storage.WalletStore
	chain        chain.Client
	keys         keystore.Decryptor
	notifier     notifications.Notifier
	masterSecret string
	logger       *slog.Logger
}

// NewService creates a transfer service.
func NewService(
	transactions storage.TransactionStore,
	wallets storage.WalletStore,
	chainClient chain.Client,
	keys keystore.Decryptor,
	notifier notifications.Notifier,
	masterSecret string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		transactions: transactions,
		wallets:      wallets,
		chain:        chainClient,
		keys:         keys,
		notifier:     notifier,
		masterSecret: masterSecret,
		logger:       logger,
	}
}

// SendRequest describes one transfer attempt.
type SendRequest struct {
	FromUserID   string
	ToUserID     string // set when the recipient is a platform user
	ToAddress    string
	Amount       models.Money
	ExchangeRate *decimal.Decimal
	Description  string
}

// SendResult is returned for a confirmed transfer.
type SendResult struct {
	TransactionID string
	ChainTxHash   string
}

// Send executes one remittance attempt.
//
// Preconditions are checked against the last-synced balance snapshot before
// any write; a failure there leaves no record. Once the pending intent is
// persisted, any failure up to and including the chain call produces exactly
// one terminal failed write, and the original error is returned to the caller.
func (s *Service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	wallet, err := s.wallets.GetWalletByUserID(ctx, req.FromUserID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.Value.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !models.ValidAddress(wallet.Network, req.ToAddress) {
		return nil, ErrInvalidDestination
	}
	if !wallet.HasEnoughBalance(req.Amount.Value, models.AssetStablecoin) {
		return nil, models.ErrInsufficientFunds
	}
	if wallet.EncryptedSigningKey == "" {
		return nil, ErrSigningKeyUnavailable
	}

	// Persist the intent before touching the chain so every attempt leaves an
	// auditable record, even one that crashes mid-flight.
	tx := models.NewTransaction(models.NewTransactionParams{
		FromUserID:   req.FromUserID,
		ToUserID:     req.ToUserID,
		ToAddress:    req.ToAddress,
		Type:         models.TypeSend,
		Amount:       req.Amount,
		ExchangeRate: req.ExchangeRate,
		Description:  req.Description,
	})
	if err := s.transactions.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record transfer intent: %w", err)
	}

	s.logger.Info("transfer intent recorded",
		"transaction_id", tx.ID,
		"from_user_id", req.FromUserID,
		"amount", req.Amount.Value.String(),
		"currency", req.Amount.Currency)

	signingKey, err := s.keys.Decrypt(wallet.EncryptedSigningKey, s.masterSecret)
	if err != nil {
		return nil, s.failTransfer(ctx, tx, err)
	}

	result, err := s.chain.Transfer(ctx, signingKey, req.ToAddress, req.Amount.Value)
	if err != nil {
		return nil, s.failTransfer(ctx, tx, err)
	}

	completed, err := tx.MarkAsCompleted(result.TxHash, &models.Confirmation{
		BlockNumber: result.BlockNumber,
		GasUsed:     result.GasUsed,
	})
	if err != nil {
		return nil, err
	}
	if err := s.transactions.UpdateTransaction(ctx, completed); err != nil {
		// Funds have moved but the record is still pending. Do not mark it
		// failed; the reconciliation sweep picks up pending records older
		// than the threshold.
		s.logger.Error("transfer confirmed on-chain but record not finalized",
			"transaction_id", tx.ID,
			"chain_tx_hash", result.TxHash,
			"error", err)
		return nil, fmt.Errorf("failed to finalize transfer record: %w", err)
	}

	s.refreshBalance(ctx, wallet)

	if err := s.notifier.NotifyTransaction(ctx, completed); err != nil {
		// Notification is not part of the money-movement contract.
		s.logger.Warn("failed to send transfer notification",
			"transaction_id", completed.ID,
			"error", err)
	}

	s.logger.Info("transfer completed",
		"transaction_id", completed.ID,
		"chain_tx_hash", result.TxHash)

	return &SendResult{
		TransactionID: completed.ID,
		ChainTxHash:   result.TxHash,
	}, nil
}

// failTransfer records the terminal failed state for tx and returns cause
// unchanged so the caller keeps full error detail.
func (s *Service) failTransfer(ctx context.Context, tx *models.Transaction, cause error) error {
	failed, err := tx.MarkAsFailed(cause.Error())
	if err != nil {
		s.logger.Error("failed to build failed snapshot", "transaction_id", tx.ID, "error", err)
		return cause
	}
	if err := s.transactions.UpdateTransaction(ctx, failed); err != nil {
		s.logger.Error("failed to persist failed transfer state",
			"transaction_id", tx.ID,
			"error", err)
	}
	return cause
}

// refreshBalance re-queries the authoritative chain balance and persists it.
// Best effort: a stale snapshot is acceptable, an invented one is not.
func (s *Service) refreshBalance(ctx context.Context, wallet *models.Wallet) {
	onChain, err := s.chain.GetBalance(ctx, wallet.Address)
	if err != nil {
		s.logger.Warn("failed to re-query chain balance after transfer",
			"wallet_id", wallet.ID,
			"error", err)
		return
	}

	balance := models.Balance{Gas: wallet.Balance.Gas, Stablecoin: onChain}
	if err := s.wallets.UpdateWalletBalance(ctx, wallet.ID, balance, wallet.Version); err != nil {
		// A version conflict means a concurrent sync already wrote a fresher
		// snapshot; losing that race is fine.
		s.logger.Warn("failed to persist refreshed balance",
			"wallet_id", wallet.ID,
			"error", err)
	}
}

// SyncBalance refreshes a user's wallet balance snapshot from the chain and
// returns the updated figure. Used by the wallet sync endpoint.
func (s *Service) SyncBalance(ctx context.Context, userID string) (*models.Balance, error) {
	wallet, err := s.wallets.GetWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	onChain, err := s.chain.GetBalance(ctx, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to query chain balance: %w", err)
	}

	balance := models.Balance{Gas: wallet.Balance.Gas, Stablecoin: onChain}
	if err := s.wallets.UpdateWalletBalance(ctx, wallet.ID, balance, wallet.Version); err != nil {
		return nil, err
	}

	return &balance, nil
}
