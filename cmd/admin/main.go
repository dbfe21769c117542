package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/crypto"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/firebase"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/firestore"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/postgres"
	"github.com/harsham1998/dashboard-api/internal/shared/config"
)

const usage = `Dashboard Admin CLI - Management commands for the dashboard API

Usage:
  admin <command> [options]

Commands:
  extract   Run the transaction extractor on a message without storing anything
  prune     Prune stored transactions down to the newest N records

Examples:
  # Dry-run the extractor against a bank SMS
  admin extract --message="Rs.500.00 debited from A/c XX7312 via UPI to Swiggy"

  # Prune storage down to the newest 50 transactions
  admin prune --keep=50
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		runExtract(os.Args[2:])
	case "prune":
		runPrune(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		fmt.Println(usage)
		os.Exit(1)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	message := fs.String("message", "", "Notification text to parse")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *message == "" {
		fmt.Println("Error: --message is required")
		os.Exit(1)
	}

	ext, err := transaction.Extract(*message)
	if err != nil {
		fmt.Printf("Not extracted: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("amount:      %s\n", ext.Amount.StringFixed(2))
	fmt.Printf("direction:   %s", ext.Direction)
	if ext.DirectionGuessed {
		fmt.Print(" (guessed)")
	}
	fmt.Println()
	fmt.Printf("bank:        %s\n", ext.Bank)
	fmt.Printf("mode:        %s\n", ext.Mode)
	if ext.Balance != nil {
		fmt.Printf("balance:     %s\n", ext.Balance.StringFixed(2))
	}
	fmt.Printf("description: %s\n", ext.Description)
	if ext.Reference != "" {
		fmt.Printf("reference:   %s\n", ext.Reference)
	}
	if ext.CardLastFour != "" {
		fmt.Printf("card:        **%s\n", ext.CardLastFour)
	}
	fmt.Printf("confidence:  %.2f (rule %s)\n", ext.Confidence, ext.AmountRule)
}

func runPrune(args []string) {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	keep := fs.Int("keep", 50, "Number of newest transactions to keep")
	timeoutStr := fs.String("timeout", "5m", "Timeout for the operation")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}
	if *keep < 1 {
		log.Fatal("--keep must be at least 1")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var encryptor *crypto.Encryptor
	if cfg.EncryptionEnabled() {
		encryptor, err = crypto.NewEncryptorFromPassphrase(cfg.Encryption.Passphrase, cfg.Encryption.Salt)
		if err != nil {
			log.Fatalf("Failed to initialize encryptor: %v", err)
		}
	}

	var repo transaction.Repository
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(cfg.Database.ConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewTransactionRepository(db, encryptor)

	case config.DriverFirestore:
		app, err := firebase.NewApp(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		client, err := firestore.NewClient(ctx, app)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer client.Close()
		repo = firestore.NewTransactionRepository(client, encryptor)

	default:
		log.Fatalf("Unknown storage driver: %q", cfg.Storage.Driver)
	}

	deleted, err := repo.Prune(ctx, *keep)
	if err != nil {
		log.Fatalf("Prune failed: %v", err)
	}

	fmt.Printf("Pruned %d transactions, keeping newest %d\n", deleted, *keep)
}
