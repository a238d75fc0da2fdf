package wallets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/altoke/remit/pkg/api"
	"github.com/altoke/remit/pkg/mapping"
	"github.com/altoke/remit/pkg/models"
	"github.com/altoke/remit/pkg/storage"
)

// BalanceSyncer refreshes a wallet's balance snapshot from the chain.
// Satisfied by *remit.Service.
type BalanceSyncer interface {
	SyncBalance(ctx context.Context, userID string) (*models.Balance, error)
}

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Store  storage.WalletStore
	Syncer BalanceSyncer
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(store storage.WalletStore, syncer BalanceSyncer) *WalletsHandler {
	return &WalletsHandler{Store: store, Syncer: syncer}
}

// CreateWallet handles the logic for onboarding a custodial wallet.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if err := json.NewDecoder(r.Body).Decode(&newWallet); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if !models.ValidAddress(models.Network(newWallet.Network), newWallet.Address) {
		http.Error(w, "Invalid address for network", http.StatusBadRequest)
		return
	}

	wallet := mapping.ToDomainNewWallet(&newWallet)
	if err := h.Store.SaveWallet(r.Context(), wallet); err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			http.Error(w, "Wallet for this user already exists", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to create wallet: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWallet(wallet)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetWalletByUserId handles the logic for retrieving a user's wallet.
func (h *WalletsHandler) GetWalletByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	wallet, err := h.Store.GetWalletByUserID(r.Context(), userId)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWallet(wallet)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// SyncWalletBalance refreshes the wallet's balance snapshot from the chain
// and returns the updated figures.
func (h *WalletsHandler) SyncWalletBalance(w http.ResponseWriter, r *http.Request, userId string) {
	balance, err := h.Syncer.SyncBalance(r.Context(), userId)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, storage.ErrVersionConflict) {
			http.Error(w, "Wallet was updated concurrently, retry", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to sync balance: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiBalance(balance)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
