package models

import "time"

// User is the wallet-owning actor. Authentication, sessions and credential
// management live outside this service; only identity attributes needed by
// the ledger (display name for payment links, email for gateway charges)
// are read here.
type User struct {
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	ID        int64     `db:"id"`
}
