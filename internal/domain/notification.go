package domain

import "time"

// NotificationKind classifies a push notification.
type NotificationKind string

// Notification kinds.
const (
	NotifySuccess NotificationKind = "SUCCESS"
	NotifyFailure NotificationKind = "FAILURE"
	NotifyInfo    NotificationKind = "INFO"
)

// Notification is a fire-and-forget message delivered to a holder over a
// long-lived push stream. If the holder has no active stream it is dropped.
type Notification struct {
	Timestamp time.Time        `json:"timestamp"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
}
