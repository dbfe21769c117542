package firestore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/crypto"
)

// transactionDoc is the Firestore shape of a transaction. Amounts are
// stored as strings because Firestore has no decimal type and float64
// would lose precision.
type transactionDoc struct {
	ID           int64     `firestore:"id"`
	Amount       string    `firestore:"amount"`
	Type         string    `firestore:"type"`
	Bank         string    `firestore:"bank"`
	Mode         string    `firestore:"mode"`
	Balance      string    `firestore:"balance,omitempty"`
	Description  string    `firestore:"description"`
	Reference    string    `firestore:"reference,omitempty"`
	CardLastFour string    `firestore:"cardLastFour,omitempty"`
	Confidence   float64   `firestore:"confidence"`
	Parsed       bool      `firestore:"parsed"`
	RawMessage   string    `firestore:"rawMessage"`
	Timestamp    time.Time `firestore:"timestamp"`
}

// TransactionRepository implements transaction.Repository on Firestore.
// When an encryptor is set, raw messages are encrypted at rest.
type TransactionRepository struct {
	client    *firestore.Client
	encryptor *crypto.Encryptor
}

func NewTransactionRepository(client *firestore.Client, encryptor *crypto.Encryptor) *TransactionRepository {
	return &TransactionRepository{client: client, encryptor: encryptor}
}

func (r *TransactionRepository) col() *firestore.CollectionRef {
	return r.client.Collection(transactionsCollection)
}

func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	doc, err := r.toDoc(tx)
	if err != nil {
		return err
	}
	if _, err := r.col().Doc(strconv.FormatInt(tx.ID, 10)).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	snap, err := r.col().Doc(strconv.FormatInt(id, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return r.fromSnap(snap)
}

// ListRecent returns up to limit transactions, newest first.
func (r *TransactionRepository) ListRecent(ctx context.Context, limit int) ([]*transaction.Transaction, error) {
	iter := r.col().OrderBy("timestamp", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var out []*transaction.Transaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		tx, err := r.fromSnap(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

// Prune deletes every transaction beyond the newest keep records and
// returns the number deleted.
func (r *TransactionRepository) Prune(ctx context.Context, keep int) (int, error) {
	iter := r.col().OrderBy("timestamp", firestore.Desc).Offset(keep).Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("failed to list transactions for pruning: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, fmt.Errorf("failed to delete transaction %s: %w", snap.Ref.ID, err)
		}
		deleted++
	}
	return deleted, nil
}

func (r *TransactionRepository) toDoc(tx *transaction.Transaction) (*transactionDoc, error) {
	raw := tx.RawMessage
	if r.encryptor != nil {
		enc, err := r.encryptor.Encrypt(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt raw message: %w", err)
		}
		raw = enc
	}

	doc := &transactionDoc{
		ID:           tx.ID,
		Amount:       tx.Amount.String(),
		Type:         string(tx.Direction),
		Bank:         tx.Bank,
		Mode:         tx.Mode,
		Description:  tx.Description,
		Reference:    tx.Reference,
		CardLastFour: tx.CardLastFour,
		Confidence:   tx.Confidence,
		Parsed:       tx.Parsed,
		RawMessage:   raw,
		Timestamp:    tx.Timestamp,
	}
	if tx.Balance != nil {
		doc.Balance = tx.Balance.String()
	}
	return doc, nil
}

func (r *TransactionRepository) fromSnap(snap *firestore.DocumentSnapshot) (*transaction.Transaction, error) {
	var doc transactionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode transaction %s: %w", snap.Ref.ID, err)
	}

	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount in transaction %s: %w", snap.Ref.ID, err)
	}

	raw := doc.RawMessage
	if r.encryptor != nil {
		dec, err := r.encryptor.Decrypt(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt raw message of transaction %s: %w", snap.Ref.ID, err)
		}
		raw = dec
	}

	tx := &transaction.Transaction{
		ID:           doc.ID,
		Amount:       amount,
		Direction:    transaction.Direction(doc.Type),
		Bank:         doc.Bank,
		Mode:         doc.Mode,
		Description:  doc.Description,
		Reference:    doc.Reference,
		CardLastFour: doc.CardLastFour,
		Confidence:   doc.Confidence,
		Parsed:       doc.Parsed,
		RawMessage:   raw,
		Timestamp:    doc.Timestamp,
	}
	if doc.Balance != "" {
		bal, err := decimal.NewFromString(doc.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid stored balance in transaction %s: %w", snap.Ref.ID, err)
		}
		tx.Balance = &bal
	}
	return tx, nil
}
