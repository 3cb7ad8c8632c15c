package domain

import (
	"strings"
)

// Account is an admin login. Passwords are stored and compared as plain text.
type Account struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username" validate:"min=3"`
	Password string `json:"password" yaml:"password" validate:"min=6"`
}

// NewAccount creates an account with trimmed credentials and a fresh id
func NewAccount(username, password string) *Account {
	return &Account{
		ID:       "acc-" + NewID(),
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
}

// Validate returns an error if the account is invalid
func (a *Account) Validate() error {
	return validateStruct(a)
}

// DefaultAccount is the bootstrap admin present until accounts are first saved
func DefaultAccount() Account {
	return Account{ID: "admin-main", Username: "admin", Password: "admin123"}
}
