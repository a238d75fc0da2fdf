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
	walletUserIDGSI  = "user_id-index"
	walletAddressGSI = "address-index"
)

// GetWalletByUserID retrieves a user's active wallet from DynamoDB.
func (s *Store) GetWalletByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.WalletsTableName),
		IndexName:              aws.String(walletUserIDGSI),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet by user ID: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrWalletNotFound
	}

	var rec walletRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return rec.toModel()
}

// GetWalletByAddress retrieves a wallet by its ledger address.
func (s *Store) GetWalletByAddress(ctx context.Context, address string) (*models.Wallet, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.WalletsTableName),
		IndexName:              aws.String(walletAddressGSI),
		KeyConditionExpression: aws.String("address = :addr"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":addr": &types.AttributeValueMemberS{Value: address},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet by address: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrWalletNotFound
	}

	var rec walletRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return rec.toModel()
}

// SaveWallet upserts a wallet record by identity. A fresh wallet (version 1)
// must not clobber an existing record for the same identity.
func (s *Store) SaveWallet(ctx context.Context, wallet *models.Wallet) error {
	walletAV, err := attributevalue.MarshalMap(toWalletRecord(wallet))
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.WalletsTableName),
		Item:      walletAV,
	}
	if wallet.Version <= 1 {
		input.ConditionExpression = aws.String("attribute_not_exists(id)")
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrWalletExists
		}
		return fmt.Errorf("failed to save wallet in DynamoDB: %w", err)
	}

	return nil
}

// UpdateWalletBalance persists a new balance snapshot for a wallet. The write
// is conditional on the version the caller read, so concurrent balance syncs
// never interleave half-way.
func (s *Store) UpdateWalletBalance(ctx context.Context, walletID string, balance models.Balance, version int64) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for balance update: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.WalletsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: walletID},
		},
		UpdateExpression:    aws.String("SET balance_gas = :gas, balance_stablecoin = :stablecoin, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gas":        &types.AttributeValueMemberS{Value: balance.Gas.String()},
			":stablecoin": &types.AttributeValueMemberS{Value: balance.Stablecoin.String()},
			":version":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version)},
			":inc":        &types.AttributeValueMemberN{Value: "1"},
			":now":        nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to update wallet balance in DynamoDB: %w", err)
	}

	return nil
}
