package notification

import "context"

// DeviceRepository defines the interface for device token data access.
type DeviceRepository interface {
	// Register stores a device. An existing device with the same token is
	// reactivated rather than duplicated.
	Register(ctx context.Context, d *Device) error
	ListActive(ctx context.Context) ([]*Device, error)
	Deactivate(ctx context.Context, id string) error
	DeactivateByToken(ctx context.Context, token string) error
}
