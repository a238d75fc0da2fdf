package wallets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/altoke/remit/pkg/api"
	syncer_mocks "github.com/altoke/remit/pkg/handlers/wallets/mocks"
	"github.com/altoke/remit/pkg/models"
	"github.com/altoke/remit/pkg/storage"
	storage_mocks "github.com/altoke/remit/pkg/storage/mocks"
)

const testWalletAddress = "0x9fB29AAc15b9A4B7F17c3385939b007540f4d791"

func TestCreateWallet(t *testing.T) {
	newWallet := &api.NewWallet{
		UserId:  "user1",
		Address: testWalletAddress,
		Network: "base",
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.WalletStore)
		handler := NewWalletsHandler(mockStore, new(syncer_mocks.BalanceSyncer))

		mockStore.On("SaveWallet", mock.Anything, mock.MatchedBy(func(w *models.Wallet) bool {
			return w.UserID == "user1" && w.Address == testWalletAddress && w.Version == 1
		})).Return(nil)

		body, _ := json.Marshal(newWallet)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		handler.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var result api.Wallet
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, "user1", result.UserId)
		assert.Equal(t, "0x9fB2...d791", result.TruncatedAddress)
		mockStore.AssertExpectations(t)
	})

	t.Run("Invalid Address", func(t *testing.T) {
		mockStore := new(storage_mocks.WalletStore)
		handler := NewWalletsHandler(mockStore, new(syncer_mocks.BalanceSyncer))

		body, _ := json.Marshal(&api.NewWallet{UserId: "user1", Address: "bogus", Network: "base"})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		handler.CreateWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "SaveWallet", mock.Anything, mock.Anything)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockStore := new(storage_mocks.WalletStore)
		handler := NewWalletsHandler(mockStore, new(syncer_mocks.BalanceSyncer))

		mockStore.On("SaveWallet", mock.Anything, mock.Anything).Return(storage.ErrWalletExists)

		body, _ := json.Marshal(newWallet)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		handler.CreateWallet(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestGetWalletByUserId(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.WalletStore)
		handler := NewWalletsHandler(mockStore, new(syncer_mocks.BalanceSyncer))

		wallet := models.NewWallet("user1", testWalletAddress, "encrypted-blob", models.NetworkBase)
		wallet.Balance.Stablecoin = decimal.NewFromInt(100)
		mockStore.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/user1/wallet", nil)
		handler.GetWalletByUserId(rr, req, "user1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var result api.Wallet
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, "100", result.BalanceStablecoin)

		// The encrypted key must never appear on the wire.
		assert.NotContains(t, rr.Body.String(), "encrypted-blob")
		mockStore.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(storage_mocks.WalletStore)
		handler := NewWalletsHandler(mockStore, new(syncer_mocks.BalanceSyncer))

		mockStore.On("GetWalletByUserID", mock.Anything, "missing").Return(nil, storage.ErrWalletNotFound)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/missing/wallet", nil)
		handler.GetWalletByUserId(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestSyncWalletBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSyncer := new(syncer_mocks.BalanceSyncer)
		handler := NewWalletsHandler(new(storage_mocks.WalletStore), mockSyncer)

		mockSyncer.On("SyncBalance", mock.Anything, "user1").
			Return(&models.Balance{Gas: decimal.RequireFromString("0.01"), Stablecoin: decimal.NewFromInt(75)}, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/user1/wallet/sync", nil)
		handler.SyncWalletBalance(rr, req, "user1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var result api.Balance
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, "75", result.Stablecoin)
		mockSyncer.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockSyncer := new(syncer_mocks.BalanceSyncer)
		handler := NewWalletsHandler(new(storage_mocks.WalletStore), mockSyncer)

		mockSyncer.On("SyncBalance", mock.Anything, "missing").Return(nil, storage.ErrWalletNotFound)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/missing/wallet/sync", nil)
		handler.SyncWalletBalance(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockSyncer.AssertExpectations(t)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockSyncer := new(syncer_mocks.BalanceSyncer)
		handler := NewWalletsHandler(new(storage_mocks.WalletStore), mockSyncer)

		mockSyncer.On("SyncBalance", mock.Anything, "user1").Return(nil, storage.ErrVersionConflict)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/user1/wallet/sync", nil)
		handler.SyncWalletBalance(rr, req, "user1")

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockSyncer.AssertExpectations(t)
	})

	t.Run("Chain Unreachable", func(t *testing.T) {
		mockSyncer := new(syncer_mocks.BalanceSyncer)
		handler := NewWalletsHandler(new(storage_mocks.WalletStore), mockSyncer)

		mockSyncer.On("SyncBalance", mock.Anything, "user1").Return(nil, errors.New("relayer unreachable"))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/user1/wallet/sync", nil)
		handler.SyncWalletBalance(rr, req, "user1")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockSyncer.AssertExpectations(t)
	})
}
