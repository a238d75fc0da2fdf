package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/altoke/remit/pkg/notifications"
)

var dispatcher *notifications.WebhookDispatcher

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	webhookURL := os.Getenv("NOTIFICATION_WEBHOOK_URL")
	if webhookURL == "" {
		log.Fatal("NOTIFICATION_WEBHOOK_URL environment variable not set")
	}
	dispatcher = notifications.NewWebhookDispatcher(webhookURL)
}

// HandleRequest drains transaction events from the notification queue and
// delivers them to the notification backend.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event notifications.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal notification event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		if err := dispatcher.Dispatch(ctx, event); err != nil {
			log.Printf("ERROR: failed to deliver notification for transfer %s: %v", event.TransactionID, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}

		log.Printf("Delivered notification for transfer %s", event.TransactionID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
