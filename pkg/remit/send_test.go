package remit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/altoke/remit/pkg/chain"
	chainmocks "github.com/altoke/remit/pkg/chain/mocks"
	keystoremocks "github.com/altoke/remit/pkg/keystore/mocks"
	"github.com/altoke/remit/pkg/models"
	notificationmocks "github.com/altoke/remit/pkg/notifications/mocks"
	"github.com/altoke/remit/pkg/storage"
	storagemocks "github.com/altoke/remit/pkg/storage/mocks"
)

const (
	testMasterSecret = "master-secret"
	testToAddress    = "0x2222222222222222222222222222222222222222"
	testSigningKey   = "decrypted-signing-key"
	testChainTxHash  = "0xdeadbeef"
)

type serviceMocks struct {
	transactions *storagemocks.TransactionStore
	wallets      *storagemocks.WalletStore
	chain        *chainmocks.Client
	keys         *keystoremocks.Decryptor
	notifier     *notificationmocks.Notifier
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		transactions: new(storagemocks.TransactionStore),
		wallets:      new(storagemocks.WalletStore),
		chain:        new(chainmocks.Client),
		keys:         new(keystoremocks.Decryptor),
		notifier:     new(notificationmocks.Notifier),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(m.transactions, m.wallets, m.chain, m.keys, m.notifier, testMasterSecret, logger)
	return svc, m
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	m.transactions.AssertExpectations(t)
	m.wallets.AssertExpectations(t)
	m.chain.AssertExpectations(t)
	m.keys.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func testWallet() *models.Wallet {
	w := models.NewWallet("user1", "0x1111111111111111111111111111111111111111", "encrypted-blob", models.NetworkBase)
	w.Balance = models.Balance{
		Gas:        decimal.RequireFromString("0.01"),
		Stablecoin: decimal.NewFromInt(500),
	}
	return w
}

func testSendRequest(t *testing.T) SendRequest {
	t.Helper()
	amount, err := models.USDC(100)
	assert.NoError(t, err)
	return SendRequest{
		FromUserID:  "user1",
		ToUserID:    "user2",
		ToAddress:   testToAddress,
		Amount:      amount,
		Description: "rent",
	}
}

func TestSendSuccess(t *testing.T) {
	svc, m := newTestService()
	wallet := testWallet()
	req := testSendRequest(t)

	var savedTx, completedTx *models.Transaction
	m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
	m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedTx = args.Get(1).(*models.Transaction)
	}).Return(nil).Once()
	m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
	m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).
		Return(&chain.TransferResult{TxHash: testChainTxHash, BlockNumber: 1234, GasUsed: 21000}, nil)
	m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		completedTx = args.Get(1).(*models.Transaction)
	}).Return(nil).Once()
	m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.NewFromInt(400), nil)
	var persistedBalance models.Balance
	m.wallets.On("UpdateWalletBalance", mock.Anything, wallet.ID, mock.Anything, wallet.Version).Run(func(args mock.Arguments) {
		persistedBalance = args.Get(2).(models.Balance)
	}).Return(nil)
	m.notifier.On("NotifyTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Send(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, testChainTxHash, result.ChainTxHash)
	assert.Equal(t, savedTx.ID, result.TransactionID)

	// The intent is written pending and finalized completed with chain metadata.
	assert.Equal(t, models.StatusPending, savedTx.Status)
	assert.Equal(t, models.StatusCompleted, completedTx.Status)
	assert.Equal(t, testChainTxHash, completedTx.ChainTxHash)
	assert.Equal(t, int64(1234), completedTx.Confirmation.BlockNumber)

	// The persisted snapshot carries the re-queried chain figure, not a local
	// decrement.
	assert.True(t, persistedBalance.Stablecoin.Equal(decimal.NewFromInt(400)))
	assert.True(t, persistedBalance.Gas.Equal(wallet.Balance.Gas))

	m.assertExpectations(t)
}

func TestSendPreconditionFailures(t *testing.T) {
	t.Run("Wallet Not Found", func(t *testing.T) {
		svc, m := newTestService()
		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(nil, storage.ErrWalletNotFound)

		_, err := svc.Send(context.Background(), testSendRequest(t))

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		m.transactions.AssertNotCalled(t, "SaveTransaction", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Zero Amount", func(t *testing.T) {
		svc, m := newTestService()
		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(testWallet(), nil)

		req := testSendRequest(t)
		req.Amount, _ = models.USDC(0)

		_, err := svc.Send(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		m.assertExpectations(t)
	})

	t.Run("Invalid Destination Address", func(t *testing.T) {
		svc, m := newTestService()
		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(testWallet(), nil)

		req := testSendRequest(t)
		req.ToAddress = "not-an-address"

		_, err := svc.Send(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidDestination)
		m.assertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()
		wallet.Balance.Stablecoin = decimal.NewFromInt(50)
		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)

		_, err := svc.Send(context.Background(), testSendRequest(t))

		assert.ErrorIs(t, err, models.ErrInsufficientFunds)

		// No record and no chain interaction for a precondition failure.
		m.transactions.AssertNotCalled(t, "SaveTransaction", mock.Anything, mock.Anything)
		m.chain.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("No Signing Key", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()
		wallet.EncryptedSigningKey = ""
		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)

		_, err := svc.Send(context.Background(), testSendRequest(t))

		assert.ErrorIs(t, err, ErrSigningKeyUnavailable)
		m.assertExpectations(t)
	})
}

func TestSendSaveIntentFails(t *testing.T) {
	svc, m := newTestService()
	m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(testWallet(), nil)
	m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	_, err := svc.Send(context.Background(), testSendRequest(t))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record transfer intent")
	m.chain.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSendDecryptFails(t *testing.T) {
	svc, m := newTestService()
	wallet := testWallet()
	decryptErr := errors.New("failed to decrypt signing key")

	var savedTx, failedTx *models.Transaction
	m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
	m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedTx = args.Get(1).(*models.Transaction)
	}).Return(nil).Once()
	m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return("", decryptErr)
	m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		failedTx = args.Get(1).(*models.Transaction)
	}).Return(nil).Once()

	_, err := svc.Send(context.Background(), testSendRequest(t))

	// The caller gets the original error, and exactly one record was created
	// then moved to failed.
	assert.ErrorIs(t, err, decryptErr)
	assert.Equal(t, savedTx.ID, failedTx.ID)
	assert.Equal(t, models.StatusFailed, failedTx.Status)
	assert.Equal(t, decryptErr.Error(), failedTx.ErrorMessage)

	m.chain.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.notifier.AssertNotCalled(t, "NotifyTransaction", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSendChainTransferFails(t *testing.T) {
	svc, m := newTestService()
	wallet := testWallet()
	chainErr := errors.New("relayer rejected transfer: nonce too low")

	var failedTx *models.Transaction
	m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
	m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()
	m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
	m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).Return(nil, chainErr)
	m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		failedTx = args.Get(1).(*models.Transaction)
	}).Return(nil).Once()

	_, err := svc.Send(context.Background(), testSendRequest(t))

	assert.ErrorIs(t, err, chainErr)
	assert.Equal(t, models.StatusFailed, failedTx.Status)
	assert.Equal(t, chainErr.Error(), failedTx.ErrorMessage)

	// A failed transfer must never touch the balance snapshot.
	m.wallets.AssertNotCalled(t, "UpdateWalletBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSendTransferTimeout(t *testing.T) {
	svc, m := newTestService()
	wallet := testWallet()

	m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
	m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()
	m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
	m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).Return(nil, chain.ErrTransferTimeout)
	m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.Send(context.Background(), testSendRequest(t))

	// Timeout stays distinguishable so the API can tell the caller the outcome
	// is unknown rather than definitively failed.
	assert.ErrorIs(t, err, chain.ErrTransferTimeout)
	m.assertExpectations(t)
}

func TestSendFinalizeFails(t *testing.T) {
	svc, m := newTestService()
	wallet := testWallet()

	m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
	m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()
	m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
	m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).
		Return(&chain.TransferResult{TxHash: testChainTxHash}, nil)
	m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Return(errors.New("dynamo down")).Once()

	_, err := svc.Send(context.Background(), testSendRequest(t))

	// Funds moved but the record could not be finalized. The record is left
	// pending for reconciliation, never marked failed.
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to finalize transfer record")
	m.transactions.AssertNumberOfCalls(t, "UpdateTransaction", 1)
	m.notifier.AssertNotCalled(t, "NotifyTransaction", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSendTolerableFailuresAfterCompletion(t *testing.T) {
	t.Run("Balance Refresh Fails", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()

		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
		m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
		m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).
			Return(&chain.TransferResult{TxHash: testChainTxHash}, nil)
		m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.Zero, errors.New("relayer unreachable"))
		m.notifier.On("NotifyTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.Send(context.Background(), testSendRequest(t))

		assert.NoError(t, err)
		assert.Equal(t, testChainTxHash, result.ChainTxHash)
		m.wallets.AssertNotCalled(t, "UpdateWalletBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Balance Version Conflict", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()

		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
		m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
		m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).
			Return(&chain.TransferResult{TxHash: testChainTxHash}, nil)
		m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.NewFromInt(400), nil)
		m.wallets.On("UpdateWalletBalance", mock.Anything, wallet.ID, mock.Anything, wallet.Version).
			Return(storage.ErrVersionConflict)
		m.notifier.On("NotifyTransaction", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Send(context.Background(), testSendRequest(t))

		assert.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("Notification Fails", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()

		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
		m.transactions.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		m.keys.On("Decrypt", wallet.EncryptedSigningKey, testMasterSecret).Return(testSigningKey, nil)
		m.chain.On("Transfer", mock.Anything, testSigningKey, testToAddress, mock.Anything).
			Return(&chain.TransferResult{TxHash: testChainTxHash}, nil)
		m.transactions.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.NewFromInt(400), nil)
		m.wallets.On("UpdateWalletBalance", mock.Anything, wallet.ID, mock.Anything, wallet.Version).Return(nil)
		m.notifier.On("NotifyTransaction", mock.Anything, mock.Anything).Return(errors.New("queue unavailable"))

		result, err := svc.Send(context.Background(), testSendRequest(t))

		assert.NoError(t, err)
		assert.NotNil(t, result)
		m.assertExpectations(t)
	})
}

func TestSyncBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()

		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
		m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.NewFromInt(250), nil)
		m.wallets.On("UpdateWalletBalance", mock.Anything, wallet.ID, mock.Anything, wallet.Version).Return(nil)

		balance, err := svc.SyncBalance(context.Background(), "user1")

		assert.NoError(t, err)
		assert.True(t, balance.Stablecoin.Equal(decimal.NewFromInt(250)))
		m.assertExpectations(t)
	})

	t.Run("Chain Query Fails", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()

		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
		m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.Zero, errors.New("relayer unreachable"))

		_, err := svc.SyncBalance(context.Background(), "user1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query chain balance")
		m.assertExpectations(t)
	})

	t.Run("Version Conflict Propagates", func(t *testing.T) {
		svc, m := newTestService()
		wallet := testWallet()

		m.wallets.On("GetWalletByUserID", mock.Anything, "user1").Return(wallet, nil)
		m.chain.On("GetBalance", mock.Anything, wallet.Address).Return(decimal.NewFromInt(250), nil)
		m.wallets.On("UpdateWalletBalance", mock.Anything, wallet.ID, mock.Anything, wallet.Version).
			Return(storage.ErrVersionConflict)

		_, err := svc.SyncBalance(context.Background(), "user1")

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		m.assertExpectations(t)
	})
}
