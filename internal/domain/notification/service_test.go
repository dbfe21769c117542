package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
	"github.com/harsham1998/dashboard-api/internal/shared/messages"
)

type mockDeviceRepo struct {
	devices     []*Device
	registered  []*Device
	listErr     error
	deactivated []string
}

func (m *mockDeviceRepo) Register(_ context.Context, d *Device) error {
	m.registered = append(m.registered, d)
	return nil
}

func (m *mockDeviceRepo) ListActive(_ context.Context) ([]*Device, error) {
	return m.devices, m.listErr
}

func (m *mockDeviceRepo) Deactivate(_ context.Context, id string) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

func (m *mockDeviceRepo) DeactivateByToken(_ context.Context, token string) error {
	m.deactivated = append(m.deactivated, token)
	return nil
}

type mockMessenger struct {
	tokens []string
	title  string
	body   string
	data   map[string]string
	calls  int
	err    error
}

func (m *mockMessenger) SendMulticast(_ context.Context, tokens []string, title, body string, data map[string]string) error {
	m.calls++
	m.tokens = tokens
	m.title = title
	m.body = body
	m.data = data
	return m.err
}

func testTexts(t *testing.T) *messages.Messages {
	t.Helper()
	texts, err := messages.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return texts
}

func TestRegisterDevice(t *testing.T) {
	repo := &mockDeviceRepo{}
	svc := NewService(repo, &mockMessenger{}, testTexts(t))

	d, err := svc.RegisterDevice(context.Background(), RegisterDeviceParams{Token: "tok-1", Name: "harsha-iphone"})
	if err != nil {
		t.Fatalf("RegisterDevice() error = %v", err)
	}
	if d.ID == "" {
		t.Error("expected generated device ID")
	}
	if !d.IsActive {
		t.Error("expected new device to be active")
	}
	if len(repo.registered) != 1 {
		t.Fatalf("registered %d devices, want 1", len(repo.registered))
	}
}

func TestRegisterDevice_EmptyToken(t *testing.T) {
	svc := NewService(&mockDeviceRepo{}, &mockMessenger{}, testTexts(t))

	_, err := svc.RegisterDevice(context.Background(), RegisterDeviceParams{})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestTransactionStored(t *testing.T) {
	repo := &mockDeviceRepo{devices: []*Device{
		{ID: "1", Token: "tok-a", IsActive: true},
		{ID: "2", Token: "tok-b", IsActive: true},
	}}
	messenger := &mockMessenger{}
	svc := NewService(repo, messenger, testTexts(t))

	tx := &transaction.Transaction{
		ID:        1724400000000,
		Amount:    decimal.RequireFromString("47500"),
		Direction: transaction.Credited,
		Bank:      "HDFC",
		Mode:      transaction.ModeUPI,
		Parsed:    true,
	}
	svc.TransactionStored(context.Background(), tx)

	if messenger.calls != 1 {
		t.Fatalf("SendMulticast calls = %d, want 1", messenger.calls)
	}
	if len(messenger.tokens) != 2 {
		t.Errorf("tokens = %v, want both device tokens", messenger.tokens)
	}
	if messenger.title != "credited: ₹47500.00" {
		t.Errorf("title = %q", messenger.title)
	}
	if messenger.body != "HDFC via UPI" {
		t.Errorf("body = %q", messenger.body)
	}
	if messenger.data["transactionId"] != "1724400000000" {
		t.Errorf("data.transactionId = %q", messenger.data["transactionId"])
	}
}

func TestTransactionStored_NoDevices(t *testing.T) {
	messenger := &mockMessenger{}
	svc := NewService(&mockDeviceRepo{}, messenger, testTexts(t))

	svc.TransactionStored(context.Background(), &transaction.Transaction{Parsed: true})

	if messenger.calls != 0 {
		t.Errorf("SendMulticast calls = %d, want 0", messenger.calls)
	}
}

func TestTransactionStored_ListError(t *testing.T) {
	repo := &mockDeviceRepo{listErr: errors.New("boom")}
	messenger := &mockMessenger{}
	svc := NewService(repo, messenger, testTexts(t))

	svc.TransactionStored(context.Background(), &transaction.Transaction{Parsed: true})

	if messenger.calls != 0 {
		t.Errorf("SendMulticast calls = %d, want 0", messenger.calls)
	}
}
