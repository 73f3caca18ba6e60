package domain

import "time"

// Notification is a message queued for a borrower. Delivery transport
// is a collaborator concern; the ledger only records the message.
type Notification struct {
	ID        string
	Message   string
	Read      bool
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
