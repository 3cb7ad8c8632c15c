package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/history"
	"github.com/dewakost/dewakost/internal/listing"
	"github.com/dewakost/dewakost/internal/repository"
	"go.uber.org/zap"
)

// KostService manages listings and their undo history
type KostService interface {
	// List filters the collection and returns the requested page
	List(ctx context.Context, filter domain.FilterState, privileged bool, page int) (listing.Page[domain.Kost], error)

	// Get returns one listing. Archived listings are hidden unless privileged.
	Get(ctx context.Context, id string, privileged bool) (*domain.Kost, error)

	// Create adds a new listing at the top of the collection
	Create(ctx context.Context, actor *domain.Account, input domain.Kost) (*domain.Kost, error)

	// Update replaces a listing's fields. changed is false when nothing
	// tracked differs, in which case nothing is written.
	Update(ctx context.Context, actor *domain.Account, input domain.Kost) (updated *domain.Kost, changed bool, err error)

	// Delete removes a listing
	Delete(ctx context.Context, actor *domain.Account, id string) error

	// ToggleArchive flips the archived flag
	ToggleArchive(ctx context.Context, actor *domain.Account, id string) (*domain.Kost, error)

	// History returns log entries matching the filter, newest first
	History(ctx context.Context, filter history.Filter) ([]domain.LogEntry, error)

	// Restore reverses a log entry and records the restore
	Restore(ctx context.Context, actor *domain.Account, entryID string) (*domain.LogEntry, error)
}

type kostService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
	log   *zap.Logger
	now   func() time.Time
}

// NewKostService creates a new kost service
func NewKostService(repos repository.Repositories, uow repository.UnitOfWork, log *zap.Logger) KostService {
	if log == nil {
		log = zap.NewNop()
	}
	return &kostService{
		repos: repos,
		uow:   uow,
		log:   log,
		now:   time.Now,
	}
}

func (s *kostService) List(ctx context.Context, filter domain.FilterState, privileged bool, page int) (listing.Page[domain.Kost], error) {
	kosts, err := s.repos.Kosts.List(ctx)
	if err != nil {
		return listing.Page[domain.Kost]{}, err
	}
	return listing.Paginate(listing.Apply(kosts, filter, privileged), page), nil
}

func (s *kostService) Get(ctx context.Context, id string, privileged bool) (*domain.Kost, error) {
	kosts, err := s.repos.Kosts.List(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(kosts, id)
	if i < 0 || (kosts[i].IsArchived && !privileged) {
		return nil, fmt.Errorf("%w: %s", ErrKostNotFound, id)
	}
	k := kosts[i]
	return &k, nil
}

func (s *kostService) Create(ctx context.Context, actor *domain.Account, input domain.Kost) (*domain.Kost, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	k := input.Clone()
	k.Normalize()
	k.ID = domain.NewID()
	k.IsArchived = false
	if err := k.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kost: %w", err)
	}

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		kosts, log, err := load(ctx, r)
		if err != nil {
			return err
		}
		entry := history.RecordCreate(k, actor, s.now())
		return save(ctx, r,
			append([]domain.Kost{k}, kosts...),
			history.Prepend(log, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kost: %w", err)
	}

	s.log.Info("kost created", zap.String("id", k.ID), zap.String("name", k.Name), zap.String("by", actor.Username))
	return &k, nil
}

func (s *kostService) Update(ctx context.Context, actor *domain.Account, input domain.Kost) (*domain.Kost, bool, error) {
	if err := requireActor(actor); err != nil {
		return nil, false, err
	}

	updated := input.Clone()
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid kost: %w", err)
	}

	changed := false
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		kosts, log, err := load(ctx, r)
		if err != nil {
			return err
		}
		i := indexOf(kosts, updated.ID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrKostNotFound, updated.ID)
		}

		// The archive flag only moves through ToggleArchive
		updated.IsArchived = kosts[i].IsArchived

		if kosts[i].Equal(updated) {
			return nil
		}

		// Fields outside the diff summary (e.g. the contact link) are still
		// saved, they just leave no history entry
		entry := history.RecordUpdate(kosts[i], updated, actor, s.now())
		changed = true
		kosts[i] = updated
		if entry == nil {
			return r.Kosts.Save(ctx, kosts)
		}
		return save(ctx, r, kosts, history.Prepend(log, *entry))
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to update kost: %w", err)
	}

	if changed {
		s.log.Info("kost updated", zap.String("id", updated.ID), zap.String("by", actor.Username))
	}
	return &updated, changed, nil
}

func (s *kostService) Delete(ctx context.Context, actor *domain.Account, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		kosts, log, err := load(ctx, r)
		if err != nil {
			return err
		}
		i := indexOf(kosts, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrKostNotFound, id)
		}

		entry := history.RecordDelete(kosts[i], actor, s.now())
		remaining := append(kosts[:i:i], kosts[i+1:]...)
		return save(ctx, r, remaining, history.Prepend(log, entry))
	})
	if err != nil {
		return fmt.Errorf("failed to delete kost: %w", err)
	}

	s.log.Info("kost deleted", zap.String("id", id), zap.String("by", actor.Username))
	return nil
}

func (s *kostService) ToggleArchive(ctx context.Context, actor *domain.Account, id string) (*domain.Kost, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var toggled domain.Kost
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		kosts, log, err := load(ctx, r)
		if err != nil {
			return err
		}
		i := indexOf(kosts, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrKostNotFound, id)
		}

		entry := history.RecordToggleArchive(kosts[i], actor, s.now())
		kosts[i].IsArchived = !kosts[i].IsArchived
		toggled = kosts[i]
		return save(ctx, r, kosts, history.Prepend(log, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle archive: %w", err)
	}

	s.log.Info("kost archive toggled",
		zap.String("id", id),
		zap.Bool("archived", toggled.IsArchived),
		zap.String("by", actor.Username),
	)
	return &toggled, nil
}

func (s *kostService) History(ctx context.Context, filter history.Filter) ([]domain.LogEntry, error) {
	log, err := s.repos.History.List(ctx)
	if err != nil {
		return nil, err
	}
	return history.Query(log, filter), nil
}

func (s *kostService) Restore(ctx context.Context, actor *domain.Account, entryID string) (*domain.LogEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var entry domain.LogEntry
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		kosts, log, err := load(ctx, r)
		if err != nil {
			return err
		}
		res, err := history.Restore(kosts, log, entryID, actor, s.now())
		if err != nil {
			return err
		}
		entry = res.Entry
		return save(ctx, r, res.Kosts, res.Log)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", entryID, err)
	}

	s.log.Info("history entry restored",
		zap.String("entry", entryID),
		zap.String("kost", entry.KostID),
		zap.String("by", actor.Username),
	)
	return &entry, nil
}

// load reads the collection and log inside one transaction
func load(ctx context.Context, r repository.Repositories) ([]domain.Kost, []domain.LogEntry, error) {
	kosts, err := r.Kosts.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	log, err := r.History.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return kosts, log, nil
}

// save writes the collection and log together
func save(ctx context.Context, r repository.Repositories, kosts []domain.Kost, log []domain.LogEntry) error {
	if err := r.Kosts.Save(ctx, kosts); err != nil {
		return err
	}
	return r.History.Save(ctx, log)
}

func indexOf(kosts []domain.Kost, id string) int {
	for i := range kosts {
		if kosts[i].ID == id {
			return i
		}
	}
	return -1
}
