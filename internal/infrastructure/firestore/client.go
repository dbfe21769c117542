package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
)

// Collection names. Kept in one place so the admin tool and repositories
// never drift apart.
const (
	tasksCollection        = "tasks"
	transactionsCollection = "transactions"
	devicesCollection      = "devices"
)

// NewClient opens the Firestore database of an initialized Firebase app.
// The caller owns the client and must Close it on shutdown.
func NewClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}
	return client, nil
}

// Ping verifies the database is reachable with a single-document read.
// Used by the health endpoint.
func Ping(ctx context.Context, client *firestore.Client) error {
	iter := client.Collection(transactionsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}
