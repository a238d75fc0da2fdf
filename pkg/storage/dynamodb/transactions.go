package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/altoke/remit/pkg/models"
	"github.com/altoke/remit/pkg/storage"
)

const (
	statusCreatedAtGSI = "status-created_at-index"
	fromUserIDGSI      = "from_user_id-created_at-index"
	chainTxHashGSI     = "chain_tx_hash-index"

	defaultListLimit = int32(50)
)

// SaveTransaction persists a newly created transaction record. The intent
// record must exist before any chain interaction, so overwriting is refused.
func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	txAV, err := attributevalue.MarshalMap(toTransactionRecord(tx))
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransfersTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to save transaction in DynamoDB: %w", err)
	}

	return nil
}

// UpdateTransaction persists a new snapshot of an existing transaction. The
// write is refused when the stored record is already terminal, so a terminal
// transaction is never resurrected.
func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	txAV, err := attributevalue.MarshalMap(toTransactionRecord(tx))
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransfersTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_exists(id) AND #status IN (:pending, :processing)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":    &types.AttributeValueMemberS{Value: string(models.StatusPending)},
			":processing": &types.AttributeValueMemberS{Value: string(models.StatusProcessing)},
		},
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("transaction %s is missing or already terminal: %w", tx.ID, err)
		}
		return fmt.Errorf("failed to update transaction in DynamoDB: %w", err)
	}

	return nil
}

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TransfersTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrTransactionNotFound
	}

	var rec transactionRecord
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return rec.toModel()
}

// GetTransactionByChainHash retrieves a transaction by its on-chain hash.
func (s *Store) GetTransactionByChainHash(ctx context.Context, chainTxHash string) (*models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransfersTableName),
		IndexName:              aws.String(chainTxHashGSI),
		KeyConditionExpression: aws.String("chain_tx_hash = :hash"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: chainTxHash},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by chain hash: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrTransactionNotFound
	}

	var rec transactionRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return rec.toModel()
}

// ListTransactionsByUserID retrieves a user's most recent transactions, newest first.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransfersTableName),
		IndexName:              aws.String(fromUserIDGSI),
		KeyConditionExpression: aws.String("from_user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user: %w", err)
	}

	var recs []transactionRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	txs := make([]models.Transaction, 0, len(recs))
	for _, rec := range recs {
		tx, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}

	return txs, nil
}

// GetStuckTransactions retrieves transactions that have sat in the pending
// state for longer than maxAge.
func (s *Store) GetStuckTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	cutoff := time.Now().Add(-maxAge)
	cutoffAV, err := attributevalue.Marshal(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff timestamp: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransfersTableName),
		IndexName:              aws.String(statusCreatedAtGSI),
		KeyConditionExpression: aws.String("#status = :pending AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(models.StatusPending)},
			":cutoff":  cutoffAV,
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query stuck transactions: %w", err)
	}

	var recs []transactionRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stuck transactions: %w", err)
	}

	txs := make([]models.Transaction, 0, len(recs))
	for _, rec := range recs {
		tx, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}

	return txs, nil
}

// CancelTransaction moves a pending transaction to cancelled. The status
// update is conditional so a transfer that has started executing on-chain can
// never be cancelled underneath the pipeline.
func (s *Store) CancelTransaction(ctx context.Context, txID string) error {
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return fmt.Errorf("failed to get transaction for cancellation: %w", err)
	}

	if !tx.CanBeCancelled() {
		return storage.ErrTransactionNotCancellable
	}

	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for cancellation: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransfersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #status = :cancelled_status, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled_status": &types.AttributeValueMemberS{Value: string(models.StatusCancelled)},
			":pending_status":   &types.AttributeValueMemberS{Value: string(models.StatusPending)},
			":now":              nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrTransactionNotCancellable
		}
		return fmt.Errorf("failed to cancel transaction in DynamoDB: %w", err)
	}

	return nil
}
