package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/altoke/remit/pkg/notifications"
	"github.com/altoke/remit/pkg/storage"
	dydbstore "github.com/altoke/remit/pkg/storage/dynamodb"
)

var store storage.Storage
var notifier notifications.Notifier

// A pending record older than this was abandoned between intent and terminal
// write (crash, relayer hang). The sweep terminalizes it; it never re-executes
// the transfer, that would risk a double spend.
const stuckTransferThreshold = 30 * time.Minute

const stuckTransferMessage = "transfer did not reach a terminal state; on-chain outcome unknown, flagged for manual review"

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	transfersTable := os.Getenv("DYNAMODB_TRANSFERS_TABLE_NAME")
	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")
	if transfersTable == "" || walletsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	store = dydbstore.New(awsdynamodb.NewFromConfig(cfg), transfersTable, walletsTable)

	queueURL := os.Getenv("NOTIFICATIONS_QUEUE_URL")
	if queueURL == "" {
		log.Fatal("NOTIFICATIONS_QUEUE_URL environment variable not set")
	}
	notifier = notifications.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation sweep for stuck transfers...")

	stuckTxs, err := store.GetStuckTransactions(ctx, stuckTransferThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stuck transfers: %v", err)
		return err
	}

	if len(stuckTxs) == 0 {
		log.Println("No stuck transfers found.")
		return nil
	}

	log.Printf("Found %d stuck transfers. Terminalizing them...", len(stuckTxs))

	for _, tx := range stuckTxs {
		failed, err := tx.MarkAsFailed(stuckTransferMessage)
		if err != nil {
			log.Printf("ERROR: failed to build failed snapshot for transfer %s: %v", tx.ID, err)
			continue
		}
		if err := store.UpdateTransaction(ctx, failed); err != nil {
			log.Printf("ERROR: failed to terminalize transfer %s: %v", tx.ID, err)
			// Continue to the next transfer, don't let one failure stop the whole batch.
			continue
		}
		if err := notifier.NotifyTransaction(ctx, failed); err != nil {
			log.Printf("ERROR: failed to notify for transfer %s: %v", tx.ID, err)
		}
		log.Printf("Terminalized stuck transfer %s", tx.ID)
	}

	log.Println("Reconciliation sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
