package notification

import (
	"errors"
	"time"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrInvalidToken   = errors.New("device token is required")
)

// Device represents a registered FCM device token. The dashboard is a
// single-user system, so devices are not scoped to accounts.
type Device struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Name      string    `json:"name,omitempty"` // e.g. "harsha-iphone"
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterDeviceParams struct {
	Token string
	Name  string
}

func (p *RegisterDeviceParams) Validate() error {
	if p.Token == "" {
		return ErrInvalidToken
	}
	return nil
}
