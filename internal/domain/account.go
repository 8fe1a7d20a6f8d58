package domain

import "time"

// AccountType is the role of an account
type AccountType string

const (
	AccountTypeUser  AccountType = "user"
	AccountTypeAdmin AccountType = "admin"
)

// IsValid returns true for known account types
func (t AccountType) IsValid() bool {
	return t == AccountTypeUser || t == AccountTypeAdmin
}

// Account represents a user or administrator
type Account struct {
	ID    string // identity provider subject
	Email string
	Phone string
	Name  string
	Type  AccountType

	// Set by the user, cleared by an admin decision
	RequestAdminAccess bool

	// Protected accounts cannot be demoted; set only at provisioning time
	Protected bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the account has the admin role
func (a *Account) IsAdmin() bool {
	return a.Type == AccountTypeAdmin
}

// AccountSummary is an account with its reservation count
type AccountSummary struct {
	Account           *Account
	TotalReservations int
}
