// Package mapping converts between the API wire models and the domain models.
package mapping

import (
	"fmt"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/altoke/remit/pkg/api"
	"github.com/altoke/remit/pkg/models"
	"github.com/altoke/remit/pkg/remit"
)

// ToSendRequest converts an API transfer request into the orchestrator's
// request shape, validating the numeric fields.
func ToSendRequest(in *api.NewTransfer) (remit.SendRequest, error) {
	currency := in.Currency
	if currency == "" {
		currency = models.CurrencyUSDC
	}

	value, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return remit.SendRequest{}, fmt.Errorf("invalid amount %q: %w", in.Amount, err)
	}
	amount, err := models.NewMoney(value, currency)
	if err != nil {
		return remit.SendRequest{}, err
	}

	req := remit.SendRequest{
		FromUserID: in.FromUserId,
		ToAddress:  in.ToAddress,
		Amount:     amount,
	}
	if in.ToUserId != nil {
		req.ToUserID = *in.ToUserId
	}
	if in.Description != nil {
		req.Description = *in.Description
	}
	if in.ExchangeRate != nil {
		rate, err := decimal.NewFromString(*in.ExchangeRate)
		if err != nil {
			return remit.SendRequest{}, fmt.Errorf("invalid exchange rate %q: %w", *in.ExchangeRate, err)
		}
		req.ExchangeRate = &rate
	}

	return req, nil
}

// ToApiTransfer converts a domain transaction to its API representation.
func ToApiTransfer(tx *models.Transaction) *api.Transfer {
	out := &api.Transfer{
		Id:          parseUUID(tx.ID),
		FromUserId:  tx.FromUserID,
		ToAddress:   tx.ToAddress,
		Type:        string(tx.Type),
		Status:      string(tx.Status),
		Amount:      tx.Amount.String(),
		Currency:    tx.Currency,
		FeeAmount:   tx.FeeAmount.String(),
		PlatformFee: tx.PlatformFee.String(),
		CreatedAt:   tx.CreatedAt,
		CompletedAt: tx.CompletedAt,
	}
	if tx.ToUserID != "" {
		out.ToUserId = strPtr(tx.ToUserID)
	}
	if tx.ConvertedAmount != nil {
		out.ConvertedAmount = strPtr(tx.ConvertedAmount.StringFixed(2))
	}
	if tx.ExchangeRate != nil {
		out.ExchangeRate = strPtr(tx.ExchangeRate.String())
	}
	if tx.ChainTxHash != "" {
		out.ChainTxHash = strPtr(tx.ChainTxHash)
	}
	if tx.Description != "" {
		out.Description = strPtr(tx.Description)
	}
	if tx.ErrorMessage != "" {
		out.ErrorMessage = strPtr(tx.ErrorMessage)
	}
	return out
}

// ToApiWallet converts a domain wallet to its API representation.
func ToApiWallet(w *models.Wallet) *api.Wallet {
	return &api.Wallet{
		Id:                parseUUID(w.ID),
		UserId:            w.UserID,
		Address:           w.Address,
		TruncatedAddress:  w.TruncatedAddress(),
		BalanceGas:        w.Balance.Gas.String(),
		BalanceStablecoin: w.Balance.Stablecoin.String(),
		IsActive:          w.IsActive,
		Network:           string(w.Network),
		CreatedAt:         w.CreatedAt,
	}
}

// ToApiBalance converts a balance snapshot to its API representation.
func ToApiBalance(b *models.Balance) *api.Balance {
	return &api.Balance{
		Gas:        b.Gas.String(),
		Stablecoin: b.Stablecoin.String(),
	}
}

// ToDomainNewWallet converts a wallet onboarding request into a domain wallet.
func ToDomainNewWallet(in *api.NewWallet) *models.Wallet {
	key := ""
	if in.EncryptedSigningKey != nil {
		key = *in.EncryptedSigningKey
	}
	return models.NewWallet(in.UserId, in.Address, key, models.Network(in.Network))
}

func parseUUID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return openapi_types.UUID{}
	}
	return parsed
}

func strPtr(s string) *string {
	return &s
}
