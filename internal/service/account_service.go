package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/repository"
	"go.uber.org/zap"
)

// AccountService manages admin accounts and the local login session.
// Passwords are compared as stored; this is a convenience gate, not security.
type AccountService interface {
	// Authenticate returns the account matching username and password exactly
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)

	// Login authenticates and remembers the account for later commands
	Login(ctx context.Context, username, password string) (*domain.Account, error)

	// Logout forgets the session
	Logout(ctx context.Context) error

	// Current returns the logged-in account, or nil when logged out
	Current(ctx context.Context) (*domain.Account, error)

	List(ctx context.Context) ([]domain.Account, error)
	Add(ctx context.Context, actor *domain.Account, username, password string) (*domain.Account, error)
	Remove(ctx context.Context, actor *domain.Account, id string) error
	ChangePassword(ctx context.Context, actor *domain.Account, id, current, next string) error
}

type accountService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
	log   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repos repository.Repositories, uow repository.UnitOfWork, log *zap.Logger) AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &accountService{repos: repos, uow: uow, log: log}
}

func (s *accountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	accounts, err := s.repos.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Username == username && a.Password == password {
			return &a, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *accountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	acc, err := s.Authenticate(ctx, username, password)
	if err != nil {
		s.log.Warn("login failed", zap.String("username", username))
		return nil, err
	}
	if err := s.repos.Settings.SaveSession(ctx, acc.ID); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.log.Info("logged in", zap.String("username", acc.Username))
	return acc, nil
}

func (s *accountService) Logout(ctx context.Context) error {
	if err := s.repos.Settings.ClearSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *accountService) Current(ctx context.Context) (*domain.Account, error) {
	id, err := s.repos.Settings.Session(ctx)
	if err != nil || id == "" {
		return nil, err
	}
	accounts, err := s.repos.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	// The account was removed or replaced by an import
	return nil, nil
}

func (s *accountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repos.Accounts.List(ctx)
}

func (s *accountService) Add(ctx context.Context, actor *domain.Account, username, password string) (*domain.Account, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	acc := domain.NewAccount(username, password)
	if err := acc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		accounts, err := r.Accounts.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if strings.EqualFold(a.Username, acc.Username) {
				return fmt.Errorf("%w: %s", ErrUsernameTaken, acc.Username)
			}
		}
		return r.Accounts.Save(ctx, append(accounts, *acc))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("account added", zap.String("username", acc.Username), zap.String("by", actor.Username))
	return acc, nil
}

func (s *accountService) Remove(ctx context.Context, actor *domain.Account, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	var removed domain.Account
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		accounts, err := r.Accounts.List(ctx)
		if err != nil {
			return err
		}
		i := accountIndex(accounts, id)
		switch {
		case i < 0:
			return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		case len(accounts) <= 1:
			return ErrLastAccount
		case id == actor.ID:
			return ErrRemoveSelf
		}
		removed = accounts[i]
		return r.Accounts.Save(ctx, append(accounts[:i:i], accounts[i+1:]...))
	})
	if err != nil {
		return err
	}

	s.log.Info("account removed", zap.String("username", removed.Username), zap.String("by", actor.Username))
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, actor *domain.Account, id, current, next string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		accounts, err := r.Accounts.List(ctx)
		if err != nil {
			return err
		}
		i := accountIndex(accounts, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if accounts[i].Password != current {
			return ErrWrongPassword
		}

		updated := accounts[i]
		updated.Password = next
		if err := updated.Validate(); err != nil {
			return fmt.Errorf("invalid password: %w", err)
		}
		accounts[i] = updated
		return r.Accounts.Save(ctx, accounts)
	})
}

func accountIndex(accounts []domain.Account, id string) int {
	for i := range accounts {
		if accounts[i].ID == id {
			return i
		}
	}
	return -1
}
