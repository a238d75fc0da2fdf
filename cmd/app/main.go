package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/altoke/remit/pkg/chain"
	"github.com/altoke/remit/pkg/handlers/transfers"
	"github.com/altoke/remit/pkg/handlers/wallets"
	"github.com/altoke/remit/pkg/keystore"
	custommiddleware "github.com/altoke/remit/pkg/middleware"
	"github.com/altoke/remit/pkg/notifications"
	"github.com/altoke/remit/pkg/remit"
	dydbstore "github.com/altoke/remit/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	transfersTable := os.Getenv("DYNAMODB_TRANSFERS_TABLE_NAME")
	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")
	if transfersTable == "" || walletsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	store := dydbstore.New(awsdynamodb.NewFromConfig(cfg), transfersTable, walletsTable)

	// Notification queue
	queueURL := os.Getenv("NOTIFICATIONS_QUEUE_URL")
	if queueURL == "" {
		log.Fatal("NOTIFICATIONS_QUEUE_URL environment variable not set")
	}
	notifier := notifications.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)

	// Chain relayer
	relayerURL := os.Getenv("RELAYER_BASE_URL")
	if relayerURL == "" {
		log.Fatal("RELAYER_BASE_URL environment variable not set")
	}
	chainClient := chain.NewRelayerClient(relayerURL)

	masterSecret := os.Getenv("CUSTODY_MASTER_SECRET")
	if masterSecret == "" {
		log.Fatal("CUSTODY_MASTER_SECRET environment variable not set")
	}

	service := remit.NewService(store, store, chainClient, keystore.New(), notifier, masterSecret, logger)

	transfersHandler := transfers.NewTransfersHandler(service, store)
	walletsHandler := wallets.NewWalletsHandler(store, service)

	router := chi.NewRouter()
	router.Use(custommiddleware.NewStructuredLogger(logger))

	router.Post("/transfers", transfersHandler.SendTransfer)
	router.Get("/transfers/{transferId}", func(w http.ResponseWriter, r *http.Request) {
		transfersHandler.GetTransferById(w, r, chi.URLParam(r, "transferId"))
	})
	router.Post("/transfers/{transferId}/cancel", func(w http.ResponseWriter, r *http.Request) {
		transfersHandler.CancelTransferById(w, r, chi.URLParam(r, "transferId"))
	})
	router.Get("/users/{userId}/transfers", func(w http.ResponseWriter, r *http.Request) {
		transfersHandler.ListTransfersByUserId(w, r, chi.URLParam(r, "userId"))
	})
	router.Post("/wallets", walletsHandler.CreateWallet)
	router.Get("/users/{userId}/wallet", func(w http.ResponseWriter, r *http.Request) {
		walletsHandler.GetWalletByUserId(w, r, chi.URLParam(r, "userId"))
	})
	router.Post("/users/{userId}/wallet/sync", func(w http.ResponseWriter, r *http.Request) {
		walletsHandler.SyncWalletBalance(w, r, chi.URLParam(r, "userId"))
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
