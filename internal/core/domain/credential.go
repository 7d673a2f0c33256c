package domain

import "time"

// Credential is the credential store's own user record: identity plus a
// bcrypt password hash. It never carries tenant metadata; that lives in the
// profile row.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
