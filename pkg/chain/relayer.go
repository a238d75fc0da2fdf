package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTransferTimeout bounds a transfer call including confirmation wait.
const DefaultTransferTimeout = 2 * time.Minute

// RelayerClient implements Client against the platform's signing relayer, an
// internal HTTP service that submits the token transfer and waits for receipt.
type RelayerClient struct {
	BaseURL         string
	HTTPClient      *http.Client
	TransferTimeout time.Duration
}

// NewRelayerClient creates a RelayerClient with sane timeouts.
func NewRelayerClient(baseURL string) *RelayerClient {
	return &RelayerClient{
		BaseURL:         baseURL,
		HTTPClient:      &http.Client{Timeout: DefaultTransferTimeout + 10*time.Second},
		TransferTimeout: DefaultTransferTimeout,
	}
}

// Make sure we conform to the interface
var _ Client = (*RelayerClient)(nil)

type transferRequest struct {
	SigningKey string `json:"signing_key"`
	ToAddress  string `json:"to_address"`
	Amount     string `json:"amount"`
}

type transferResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber int64  `json:"block_number"`
	GasUsed     int64  `json:"gas_used"`
	Error       string `json:"error,omitempty"`
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Transfer submits the transfer to the relayer and waits for confirmation.
// The call is bounded by TransferTimeout; a deadline hit surfaces as
// ErrTransferTimeout because the chain outcome is unknown at that point.
func (c *RelayerClient) Transfer(ctx context.Context, signingKey, toAddress string, amount decimal.Decimal) (*TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.TransferTimeout)
	defer cancel()

	body, err := json.Marshal(transferRequest{
		SigningKey: signingKey,
		ToAddress:  toAddress,
		Amount:     amount.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transfer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrTransferTimeout
		}
		return nil, fmt.Errorf("transfer request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer response: %w", err)
	}

	var result transferResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode transfer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return nil, fmt.Errorf("relayer rejected transfer: %s", result.Error)
		}
		return nil, fmt.Errorf("relayer returned status %d", resp.StatusCode)
	}

	if result.TxHash == "" {
		return nil, errors.New("relayer returned no transaction hash")
	}

	return &TransferResult{
		TxHash:      result.TxHash,
		BlockNumber: result.BlockNumber,
		GasUsed:     result.GasUsed,
	}, nil
}

// GetBalance queries the relayer for the authoritative stablecoin balance.
func (c *RelayerClient) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/balances/"+url.PathEscape(address), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build balance request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("relayer returned status %d for balance query", resp.StatusCode)
	}

	var result balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode balance response: %w", err)
	}

	balance, err := decimal.NewFromString(result.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance %q: %w", result.Balance, err)
	}

	return balance, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
