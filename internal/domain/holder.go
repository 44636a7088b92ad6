package domain

import (
	"errors"
	"time"
)

// ErrHolderNotFound indicates that the account holder is not found.
var ErrHolderNotFound = errors.New("holder not found")

// Holder is the account owner who initiates operations and receives
// confirmation codes and notifications.
type Holder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
