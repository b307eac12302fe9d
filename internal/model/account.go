package model

import "time"

// AccountID uniquely identifies an account across the system
type AccountID string

// Role is the authorization tag carried by an account.
// It is assigned at creation and never changes.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Account is a stored identity record.
// Emails are unique case-insensitively across the directory.
type Account struct {
	ID          AccountID
	Username    string // login-visible handle, no whitespace
	DisplayName string
	Email       string // stored lowercased
	PhoneDigits string // 7-15 ASCII digits
	BirthDate   time.Time
	Address     string
	// CredentialSecret is the password as submitted. Plaintext storage is a
	// known gap: production hardening requires replacing this with a salted
	// one-way hash.
	CredentialSecret string
	Role             Role
	CreatedAt        time.Time
}

// SanitizedAccount is an Account projection safe to return to callers.
// It has no credential field at all, so sanitization holds by construction.
type SanitizedAccount struct {
	ID          AccountID
	Username    string
	DisplayName string
	Email       string
	PhoneDigits string
	BirthDate   time.Time
	Address     string
	Role        Role
}

// Sanitized returns the caller-safe projection of the account
func (a *Account) Sanitized() SanitizedAccount {
	return SanitizedAccount{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		PhoneDigits: a.PhoneDigits,
		BirthDate:   a.BirthDate,
		Address:     a.Address,
		Role:        a.Role,
	}
}

// Registration carries the raw field values of a registration attempt,
// before any validation has run
type Registration struct {
	Username        string
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	BirthDate       time.Time
	Address         string
}
