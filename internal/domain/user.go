package domain

import "time"

// User is the borrower a loan belongs to. The ledger only reads
// users: it needs contact fields for reminder projections and an ID
// to scope loans and payments. Account management lives elsewhere.
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
