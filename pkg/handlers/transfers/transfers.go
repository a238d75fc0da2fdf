package transfers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/altoke/remit/pkg/api"
	"github.com/altoke/remit/pkg/chain"
	"github.com/altoke/remit/pkg/mapping"
	"github.com/altoke/remit/pkg/models"
	"github.com/altoke/remit/pkg/remit"
	"github.com/altoke/remit/pkg/storage"
)

// Sender executes transfer attempts. Satisfied by *remit.Service.
type Sender interface {
	Send(ctx context.Context, req remit.SendRequest) (*remit.SendResult, error)
}

// TransfersHandler holds the dependencies for transfer-related handlers.
type TransfersHandler struct {
	Service Sender
	Store   storage.TransactionStore
}

// NewTransfersHandler creates a new TransfersHandler.
func NewTransfersHandler(service Sender, store storage.TransactionStore) *TransfersHandler {
	return &TransfersHandler{Service: service, Store: store}
}

// SendTransfer handles the logic for executing a new transfer.
func (h *TransfersHandler) SendTransfer(w http.ResponseWriter, r *http.Request) {
	var newTransfer api.NewTransfer
	if err := json.NewDecoder(r.Body).Decode(&newTransfer); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req, err := mapping.ToSendRequest(&newTransfer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Service.Send(r.Context(), req)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	tx, err := h.Store.GetTransaction(r.Context(), result.TransactionID)
	if err != nil {
		// The transfer itself succeeded; return the receipt without the full record.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.TransferReceipt{
			TransactionId: mustUUID(result.TransactionID),
			ChainTxHash:   result.ChainTxHash,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiTransfer(tx)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetTransferById handles the logic for retrieving a transfer by its ID.
func (h *TransfersHandler) GetTransferById(w http.ResponseWriter, r *http.Request, transferId string) {
	tx, err := h.Store.GetTransaction(r.Context(), transferId)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transfer not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve transfer: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiTransfer(tx)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CancelTransferById handles the logic for cancelling a transfer that has not
// started executing on-chain.
func (h *TransfersHandler) CancelTransferById(w http.ResponseWriter, r *http.Request, transferId string) {
	if err := h.Store.CancelTransaction(r.Context(), transferId); err != nil {
		if errors.Is(err, storage.ErrTransactionNotCancellable) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transfer not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to cancel transfer: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTransfersByUserId handles the logic for retrieving a user's transfer history.
func (h *TransfersHandler) ListTransfersByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	txs, err := h.Store.ListTransactionsByUserID(r.Context(), userId, 0)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transfers: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transfer, len(txs))
	for i := range txs {
		apiTxs[i] = mapping.ToApiTransfer(&txs[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func mustUUID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return openapi_types.UUID{}
	}
	return parsed
}

func (h *TransfersHandler) writeSendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrWalletNotFound):
		http.Error(w, "Wallet not found", http.StatusNotFound)
	case errors.Is(err, remit.ErrInvalidDestination),
		errors.Is(err, remit.ErrInvalidAmount),
		errors.Is(err, remit.ErrSigningKeyUnavailable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, chain.ErrTransferTimeout):
		http.Error(w, "Transfer timed out; check status before retrying", http.StatusGatewayTimeout)
	default:
		http.Error(w, "Transfer failed, try again", http.StatusBadGateway)
	}
}
