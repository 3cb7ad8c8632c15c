package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/repository"
	"go.uber.org/zap"
)

// LookupService manages the campus and facility option lists. Renames and
// removals cascade into every listing that uses the value.
type LookupService interface {
	List(ctx context.Context, kind domain.LookupKind) ([]string, error)
	Add(ctx context.Context, actor *domain.Account, kind domain.LookupKind, value string) ([]string, error)
	Rename(ctx context.Context, actor *domain.Account, kind domain.LookupKind, oldValue, newValue string) ([]string, error)
	Remove(ctx context.Context, actor *domain.Account, kind domain.LookupKind, value string) ([]string, error)
}

type lookupService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
	log   *zap.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(repos repository.Repositories, uow repository.UnitOfWork, log *zap.Logger) LookupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &lookupService{repos: repos, uow: uow, log: log}
}

func (s *lookupService) List(ctx context.Context, kind domain.LookupKind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown list %q", ErrInvalidLookup, kind)
	}
	return s.repos.Lookups.List(ctx, kind)
}

func (s *lookupService) Add(ctx context.Context, actor *domain.Account, kind domain.LookupKind, value string) ([]string, error) {
	if err := s.check(actor, kind); err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: value is empty", ErrInvalidLookup)
	}

	var out []string
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		values, err := r.Lookups.List(ctx, kind)
		if err != nil {
			return err
		}
		if slices.Contains(values, value) {
			out = values
			return nil
		}
		out = sortedUnique(append(values, value))
		return r.Lookups.Save(ctx, kind, out)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", kind, err)
	}

	s.log.Info("lookup added", zap.String("kind", string(kind)), zap.String("value", value))
	return out, nil
}

func (s *lookupService) Rename(ctx context.Context, actor *domain.Account, kind domain.LookupKind, oldValue, newValue string) ([]string, error) {
	if err := s.check(actor, kind); err != nil {
		return nil, err
	}
	newValue = strings.TrimSpace(newValue)
	if newValue == "" {
		return nil, fmt.Errorf("%w: value is empty", ErrInvalidLookup)
	}

	var out []string
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		values, err := r.Lookups.List(ctx, kind)
		if err != nil {
			return err
		}
		if oldValue == newValue {
			out = values
			return nil
		}
		if !slices.Contains(values, oldValue) {
			return fmt.Errorf("%w: %q is not in %s", ErrInvalidLookup, oldValue, kind)
		}

		out = sortedUnique(replaceTag(values, oldValue, newValue))
		if err := r.Lookups.Save(ctx, kind, out); err != nil {
			return err
		}
		return s.cascade(ctx, r, kind, func(tags []string) []string {
			return replaceTag(tags, oldValue, newValue)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", kind, err)
	}

	s.log.Info("lookup renamed",
		zap.String("kind", string(kind)),
		zap.String("from", oldValue),
		zap.String("to", newValue),
	)
	return out, nil
}

func (s *lookupService) Remove(ctx context.Context, actor *domain.Account, kind domain.LookupKind, value string) ([]string, error) {
	if err := s.check(actor, kind); err != nil {
		return nil, err
	}

	var out []string
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		values, err := r.Lookups.List(ctx, kind)
		if err != nil {
			return err
		}
		out = removeTag(values, value)
		if err := r.Lookups.Save(ctx, kind, out); err != nil {
			return err
		}
		return s.cascade(ctx, r, kind, func(tags []string) []string {
			return removeTag(tags, value)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove %s: %w", kind, err)
	}

	s.log.Info("lookup removed", zap.String("kind", string(kind)), zap.String("value", value))
	return out, nil
}

func (s *lookupService) check(actor *domain.Account, kind domain.LookupKind) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown list %q", ErrInvalidLookup, kind)
	}
	return nil
}

// cascade rewrites the matching tag list of every listing. It is not
// recorded in the history log.
func (s *lookupService) cascade(ctx context.Context, r repository.Repositories, kind domain.LookupKind, fn func([]string) []string) error {
	kosts, err := r.Kosts.List(ctx)
	if err != nil {
		return err
	}
	for i := range kosts {
		if kind == domain.LookupCampuses {
			kosts[i].NearbyCampuses = fn(kosts[i].NearbyCampuses)
		} else {
			kosts[i].Facilities = fn(kosts[i].Facilities)
		}
	}
	return r.Kosts.Save(ctx, kosts)
}

func replaceTag(tags []string, oldValue, newValue string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == oldValue {
			t = newValue
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func removeTag(tags []string, value string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != value {
			out = append(out, t)
		}
	}
	return out
}

func sortedUnique(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
