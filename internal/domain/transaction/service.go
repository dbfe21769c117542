package transaction

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Notifier is told about every transaction stored through the voice
// endpoint. Implemented by the notification service; may be nil.
type Notifier interface {
	TransactionStored(ctx context.Context, tx *Transaction)
}

// Service ingests raw notification text: extract, persist, notify.
type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Ingest parses raw and stores the result. Extraction failure is a normal
// outcome: the raw message is stored unparsed for manual review and the
// extraction error is returned alongside the stored record so the caller
// can report it as ignored rather than failed.
func (s *Service) Ingest(ctx context.Context, raw string) (*Transaction, error) {
	now := time.Now()
	tx := &Transaction{
		ID:         now.UnixMilli(),
		RawMessage: raw,
		Timestamp:  now,
	}

	ext, extractErr := Extract(raw)
	if extractErr != nil {
		tx.Parsed = false
		tx.Bank = BankUnknown
		tx.Mode = ModeOther
		tx.Description = "Unparsed message"
		if err := s.repo.Create(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to store unparsed message: %w", err)
		}
		log.Printf("Stored unparsed message %d for review: %v", tx.ID, extractErr)
		if s.notifier != nil {
			s.notifier.TransactionStored(ctx, tx)
		}
		return tx, extractErr
	}

	tx.Parsed = true
	tx.Amount = ext.Amount
	tx.Direction = ext.Direction
	tx.Bank = ext.Bank
	tx.Mode = ext.Mode
	tx.Balance = ext.Balance
	tx.Description = ext.Description
	tx.Reference = ext.Reference
	tx.CardLastFour = ext.CardLastFour
	tx.Confidence = ext.Confidence

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TransactionStored(ctx, tx)
	}

	return tx, nil
}

// Get returns one stored transaction by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// Recent returns the newest transactions, clamping limit to a sane range.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}
