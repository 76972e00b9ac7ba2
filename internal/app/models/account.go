package models

import "time"

// Account holds login credentials. Its ID is shared with the profile it owns.
type Account struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// RefreshToken is a stored, revocable refresh token.
type RefreshToken struct {
	Token      string    `db:"token"`
	AccountID  string    `db:"account_id"`
	ExpiryDate time.Time `db:"expiry_date"`
	IsRevoked  bool      `db:"is_revoked"`
	CreatedAt  time.Time `db:"created_at"`
}
