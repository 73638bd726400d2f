package domain

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient message shown to the user once.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Operation string           `json:"operation"`
	Message   string           `json:"message"`
	Subject   string           `json:"subject,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
