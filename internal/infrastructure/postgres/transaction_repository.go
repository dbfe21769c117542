package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
	"github.com/harsham1998/dashboard-api/internal/infrastructure/crypto"
)

// TransactionRepository implements transaction.Repository on Postgres.
// When an encryptor is set, raw messages are encrypted at rest.
type TransactionRepository struct {
	db        *DB
	encryptor *crypto.Encryptor
}

func NewTransactionRepository(db *DB, encryptor *crypto.Encryptor) *TransactionRepository {
	return &TransactionRepository{db: db, encryptor: encryptor}
}

const transactionColumns = `id, amount, type, bank, mode, balance, description, reference, card_last_four, confidence, parsed, raw_message, timestamp`

func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	raw := tx.RawMessage
	if r.encryptor != nil {
		enc, err := r.encryptor.Encrypt(raw)
		if err != nil {
			return fmt.Errorf("failed to encrypt raw message: %w", err)
		}
		raw = enc
	}

	var balance any
	if tx.Balance != nil {
		balance = *tx.Balance
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.Amount, string(tx.Direction), tx.Bank, tx.Mode, balance,
		tx.Description, tx.Reference, tx.CardLastFour, tx.Confidence,
		tx.Parsed, raw, tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := r.scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (r *TransactionRepository) ListRecent(ctx context.Context, limit int) ([]*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY timestamp DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []*transaction.Transaction
	for rows.Next() {
		tx, err := r.scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) Prune(ctx context.Context, keep int) (int, error) {
	query := `
		DELETE FROM transactions
		WHERE id NOT IN (
			SELECT id FROM transactions ORDER BY timestamp DESC LIMIT $1
		)
	`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune transactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned transactions: %w", err)
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *TransactionRepository) scanTransaction(row scanner) (*transaction.Transaction, error) {
	var (
		tx        transaction.Transaction
		direction string
		balance   decimal.NullDecimal
	)
	err := row.Scan(
		&tx.ID, &tx.Amount, &direction, &tx.Bank, &tx.Mode, &balance,
		&tx.Description, &tx.Reference, &tx.CardLastFour, &tx.Confidence,
		&tx.Parsed, &tx.RawMessage, &tx.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	tx.Direction = transaction.Direction(direction)
	if balance.Valid {
		tx.Balance = &balance.Decimal
	}
	if r.encryptor != nil {
		raw, err := r.encryptor.Decrypt(tx.RawMessage)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt raw message: %w", err)
		}
		tx.RawMessage = raw
	}
	return &tx, nil
}
