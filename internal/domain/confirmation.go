package domain

import (
	"errors"
	"time"
)

var (
	// ErrConfirmationNotFound indicates no unconfirmed code exists for the holder.
	ErrConfirmationNotFound = errors.New("confirmation code not found")
	// ErrConfirmationExpired indicates the code outlived its lifetime.
	ErrConfirmationExpired = errors.New("confirmation code expired")
	// ErrConfirmationMismatch indicates the submitted code does not match.
	ErrConfirmationMismatch = errors.New("confirmation code mismatch")
)

// ConfirmationCode is a short-lived numeric token proving out-of-band device
// approval of a pending operation. Confirmed is write-once true; expiry is
// detected lazily at validation time.
type ConfirmationCode struct {
	ID        string    `json:"id"`
	HolderID  string    `json:"holder_id"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Confirmed bool      `json:"confirmed"`
}

// Expired reports whether the code is past its lifetime at the given instant.
func (c ConfirmationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ConfirmationRequest is the payload published to the device when a code is
// issued.
type ConfirmationRequest struct {
	HolderID string `json:"holder_id"`
	Code     string `json:"code"`
}

// DeviceValidation is the payload the device publishes back after the holder
// approves or denies the operation.
type DeviceValidation struct {
	HolderID      string `json:"holder_id"`
	CodeSubmitted string `json:"code_submitted"`
	BiometryOK    bool   `json:"biometry_ok"`
}
