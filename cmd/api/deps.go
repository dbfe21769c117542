package main

import (
	"context"
	"fmt"
	"log"

	cloudfirestore "cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"

	"github.com/harsham1998/dashboard-api/internal/domain/notification"
	"github.com/harsham1998/dashboard-api/internal/domain/task"
	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/crypto"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/firebase"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/firestore"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/postgres"
	httphandlers "github.com/harsham1998/dashboard-api/internal/interfaces/http"
	"github.com/harsham1998/dashboard-api/internal/shared/config"
	"github.com/harsham1998/dashboard-api/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB       *postgres.DB
	FSClient *cloudfirestore.Client

	// Handlers
	HealthHandler      *httphandlers.HealthHandler
	TaskHandler        *httphandlers.TaskHandler
	SiriHandler        *httphandlers.SiriHandler
	TransactionHandler *httphandlers.TransactionHandler
	DeviceHandler      *httphandlers.DeviceHandler

	// Repository exposed for the retention scheduler
	TransactionRepo transaction.Repository
}

// NewDependencies initializes storage, services, and handlers.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	var encryptor *crypto.Encryptor
	if cfg.EncryptionEnabled() {
		var err error
		encryptor, err = crypto.NewEncryptorFromPassphrase(cfg.Encryption.Passphrase, cfg.Encryption.Salt)
		if err != nil {
			return nil, err
		}
		log.Println("Raw message encryption enabled")
	}

	// One Firebase app serves both Firestore and FCM. It is nil when the
	// postgres driver runs without Firebase credentials.
	var fbApp *fb.App
	if cfg.Firebase.CredentialsFile != "" || cfg.Firebase.ProjectID != "" {
		app, err := firebase.NewApp(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.ProjectID)
		if err != nil {
			return nil, err
		}
		fbApp = app
	}

	var (
		taskRepo   task.Repository
		txRepo     transaction.Repository
		deviceRepo notification.DeviceRepository
		probe      httphandlers.StorageProbe
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(cfg.Database.ConnectionString())
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Println("Connected to Postgres")

		deps.DB = db
		taskRepo = postgres.NewTaskRepository(db)
		txRepo = postgres.NewTransactionRepository(db, encryptor)
		deviceRepo = postgres.NewDeviceRepository(db)
		probe = db.PingContext

	case config.DriverFirestore:
		if fbApp == nil {
			return nil, fmt.Errorf("firestore driver requires Firebase configuration")
		}
		client, err := firestore.NewClient(ctx, fbApp)
		if err != nil {
			return nil, err
		}
		log.Println("Connected to Firestore")

		deps.FSClient = client
		taskRepo = firestore.NewTaskRepository(client)
		txRepo = firestore.NewTransactionRepository(client, encryptor)
		deviceRepo = firestore.NewDeviceRepository(client)
		probe = func(ctx context.Context) error {
			return firestore.Ping(ctx, client)
		}

	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	texts, err := messages.Load(cfg.Messages.Path)
	if err != nil {
		return nil, err
	}

	var messenger notification.Messenger
	if fbApp != nil {
		client, err := firebase.NewClient(ctx, fbApp, deviceRepo.DeactivateByToken)
		if err != nil {
			return nil, err
		}
		messenger = client
		log.Println("FCM push notifications enabled")
	} else {
		log.Println("Firebase not configured, push notifications disabled")
	}
	notifService := notification.NewService(deviceRepo, messenger, texts)

	txService := transaction.NewService(txRepo, notifService)

	deps.TransactionRepo = txRepo
	deps.HealthHandler = httphandlers.NewHealthHandler(probe)
	deps.TaskHandler = httphandlers.NewTaskHandler(taskRepo)
	deps.SiriHandler = httphandlers.NewSiriHandler(taskRepo, txService)
	deps.TransactionHandler = httphandlers.NewTransactionHandler(txService)
	deps.DeviceHandler = httphandlers.NewDeviceHandler(notifService)

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
	if d.FSClient != nil {
		d.FSClient.Close()
	}
}
