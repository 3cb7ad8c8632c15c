package service

import (
	"errors"

	"github.com/dewakost/dewakost/internal/domain"
)

var (
	ErrUnauthenticated    = errors.New("login required")
	ErrKostNotFound       = errors.New("kost not found")
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrAccountNotFound    = errors.New("account not found")
	ErrLastAccount        = errors.New("cannot remove the only admin account")
	ErrRemoveSelf         = errors.New("cannot remove the account you are logged in with")
	ErrWrongPassword      = errors.New("current password is wrong")
	ErrInvalidBackup      = errors.New("invalid backup file")
	ErrInvalidLookup      = errors.New("invalid lookup value")
)

func requireActor(actor *domain.Account) error {
	if actor == nil || actor.ID == "" {
		return ErrUnauthenticated
	}
	return nil
}
