package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/harsham1998/dashboard-api/internal/domain/notification"
)

type deviceDoc struct {
	ID        string    `firestore:"id"`
	Token     string    `firestore:"token"`
	Name      string    `firestore:"name,omitempty"`
	IsActive  bool      `firestore:"isActive"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// DeviceRepository implements notification.DeviceRepository on Firestore.
type DeviceRepository struct {
	client *firestore.Client
}

func NewDeviceRepository(client *firestore.Client) *DeviceRepository {
	return &DeviceRepository{client: client}
}

func (r *DeviceRepository) col() *firestore.CollectionRef {
	return r.client.Collection(devicesCollection)
}

// Register stores a device. If the token is already registered the
// existing document is reactivated instead of duplicated.
func (r *DeviceRepository) Register(ctx context.Context, d *notification.Device) error {
	existing, err := r.findByToken(ctx, d.Token)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err := existing.Ref.Update(ctx, []firestore.Update{
			{Path: "isActive", Value: true},
			{Path: "name", Value: d.Name},
		})
		if err != nil {
			return fmt.Errorf("failed to reactivate device: %w", err)
		}
		var doc deviceDoc
		if err := existing.DataTo(&doc); err == nil {
			d.ID = doc.ID
			d.CreatedAt = doc.CreatedAt
		}
		d.IsActive = true
		return nil
	}

	doc := &deviceDoc{
		ID:        d.ID,
		Token:     d.Token,
		Name:      d.Name,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}
	if _, err := r.col().Doc(d.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (r *DeviceRepository) ListActive(ctx context.Context) ([]*notification.Device, error) {
	iter := r.col().Where("isActive", "==", true).Documents(ctx)
	defer iter.Stop()

	var devices []*notification.Device
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list devices: %w", err)
		}
		var doc deviceDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode device %s: %w", snap.Ref.ID, err)
		}
		devices = append(devices, &notification.Device{
			ID:        doc.ID,
			Token:     doc.Token,
			Name:      doc.Name,
			IsActive:  doc.IsActive,
			CreatedAt: doc.CreatedAt,
		})
	}
	return devices, nil
}

func (r *DeviceRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{{Path: "isActive", Value: false}})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return notification.ErrDeviceNotFound
		}
		return fmt.Errorf("failed to deactivate device: %w", err)
	}
	return nil
}

func (r *DeviceRepository) DeactivateByToken(ctx context.Context, token string) error {
	snap, err := r.findByToken(ctx, token)
	if err != nil {
		return err
	}
	if snap == nil {
		return notification.ErrDeviceNotFound
	}
	if _, err := snap.Ref.Update(ctx, []firestore.Update{{Path: "isActive", Value: false}}); err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}
	return nil
}

func (r *DeviceRepository) findByToken(ctx context.Context, token string) (*firestore.DocumentSnapshot, error) {
	iter := r.col().Where("token", "==", token).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up device token: %w", err)
	}
	return snap, nil
}
