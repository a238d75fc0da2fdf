package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/altoke/remit/pkg/storage"
)

// DynamoDBAPI defines the subset of the DynamoDB client used by the store.
// Narrowing to an interface keeps the store testable with a mocked client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements the storage contracts using AWS DynamoDB.
type Store struct {
	Client             DynamoDBAPI
	TransfersTableName string
	WalletsTableName   string
}

// New creates a new Store.
func New(client DynamoDBAPI, transfersTable, walletsTable string) *Store {
	return &Store{
		Client:             client,
		TransfersTableName: transfersTable,
		WalletsTableName:   walletsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
