package postgres

import (
	"context"
	"fmt"

	"github.com/harsham1998/dashboard-api/internal/domain/notification"
)

// DeviceRepository implements notification.DeviceRepository on Postgres.
type DeviceRepository struct {
	db *DB
}

func NewDeviceRepository(db *DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Register upserts on the unique token so re-registering a device
// reactivates it instead of failing.
func (r *DeviceRepository) Register(ctx context.Context, d *notification.Device) error {
	query := `
		INSERT INTO devices (id, token, name, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (token) DO UPDATE SET is_active = TRUE, name = EXCLUDED.name
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.ID, d.Token, d.Name, d.IsActive, d.CreatedAt,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (r *DeviceRepository) ListActive(ctx context.Context) ([]*notification.Device, error) {
	query := `SELECT id, token, name, is_active, created_at FROM devices WHERE is_active = TRUE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []*notification.Device
	for rows.Next() {
		var d notification.Device
		if err := rows.Scan(&d.ID, &d.Token, &d.Name, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, &d)
	}
	return devices, rows.Err()
}

func (r *DeviceRepository) Deactivate(ctx context.Context, id string) error {
	return r.deactivateWhere(ctx, `id = $1`, id)
}

func (r *DeviceRepository) DeactivateByToken(ctx context.Context, token string) error {
	return r.deactivateWhere(ctx, `token = $1`, token)
}

func (r *DeviceRepository) deactivateWhere(ctx context.Context, cond string, arg any) error {
	res, err := r.db.ExecContext(ctx, `UPDATE devices SET is_active = FALSE WHERE `+cond, arg)
	if err != nil {
		return fmt.Errorf("failed to deactivate device: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivation: %w", err)
	}
	if n == 0 {
		return notification.ErrDeviceNotFound
	}
	return nil
}
