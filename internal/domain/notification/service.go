package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
	"github.com/harsham1998/dashboard-api/internal/shared/messages"
)

// Service handles device registration and push delivery for stored
// transactions.
type Service struct {
	repo      DeviceRepository
	messenger Messenger
	texts     *messages.Messages
}

func NewService(repo DeviceRepository, messenger Messenger, texts *messages.Messages) *Service {
	return &Service{repo: repo, messenger: messenger, texts: texts}
}

func (s *Service) RegisterDevice(ctx context.Context, params RegisterDeviceParams) (*Device, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := &Device{
		ID:        uuid.NewString(),
		Token:     params.Token,
		Name:      params.Name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Register(ctx, d); err != nil {
		return nil, fmt.Errorf("registering device: %w", err)
	}
	return d, nil
}

func (s *Service) DeactivateDevice(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

// TransactionStored pushes a summary of a newly stored transaction to every
// active device. Delivery failures are logged, not returned: notification is
// best effort and must never fail the ingest path.
func (s *Service) TransactionStored(ctx context.Context, tx *transaction.Transaction) {
	if s.messenger == nil {
		return
	}

	devices, err := s.repo.ListActive(ctx)
	if err != nil {
		log.Printf("Error listing devices for notification: %v", err)
		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}

	vars := map[string]string{
		"direction": string(tx.Direction),
		"amount":    tx.Amount.StringFixed(2),
		"bank":      tx.Bank,
		"mode":      tx.Mode,
	}
	text := s.texts.TransactionStored
	if !tx.Parsed {
		text = s.texts.TransactionFailed
	}
	title := messages.Render(text.Title, vars)
	body := messages.Render(text.Body, vars)
	data := map[string]string{
		"transactionId": fmt.Sprintf("%d", tx.ID),
		"type":          string(tx.Direction),
	}

	if err := s.messenger.SendMulticast(ctx, tokens, title, body, data); err != nil {
		log.Printf("Error sending transaction notification: %v", err)
	}
}
