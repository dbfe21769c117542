package transaction

import (
	"context"
	"errors"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Repository defines the interface for transaction data access.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	// ListRecent returns the newest transactions first.
	ListRecent(ctx context.Context, limit int) ([]*Transaction, error)
	// Prune deletes everything beyond the keep newest transactions and
	// returns the number of records removed.
	Prune(ctx context.Context, keep int) (int, error)
}
