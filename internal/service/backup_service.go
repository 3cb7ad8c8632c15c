package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/repository"
	"go.uber.org/zap"
)

// Backup is the export format, compatible with backups from the web version
type Backup struct {
	KostData    []domain.Kost      `json:"kostData"`
	HistoryLog  []domain.LogEntry  `json:"historyLog"`
	Campuses    []string           `json:"campuses"`
	Facilities  []string           `json:"facilities"`
	SocialLinks domain.SocialLinks `json:"socialLinks"`
	Accounts    []domain.Account   `json:"accounts"`
	Timestamp   time.Time          `json:"timestamp"`
}

// BackupService exports and imports every collection as one JSON document
type BackupService interface {
	Export(ctx context.Context) ([]byte, error)

	// Parse validates a backup document without applying it
	Parse(data []byte) (*Backup, error)

	// Import replaces all collections with the backup's content
	Import(ctx context.Context, actor *domain.Account, data []byte) (*Backup, error)

	// Reset clears every collection so defaults apply again
	Reset(ctx context.Context) error
}

type backupService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
	log   *zap.Logger
	now   func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(repos repository.Repositories, uow repository.UnitOfWork, log *zap.Logger) BackupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &backupService{repos: repos, uow: uow, log: log, now: time.Now}
}

func (s *backupService) Export(ctx context.Context) ([]byte, error) {
	b := Backup{Timestamp: s.now().UTC()}

	var err error
	if b.KostData, err = s.repos.Kosts.List(ctx); err != nil {
		return nil, err
	}
	if b.HistoryLog, err = s.repos.History.List(ctx); err != nil {
		return nil, err
	}
	if b.Campuses, err = s.repos.Lookups.List(ctx, domain.LookupCampuses); err != nil {
		return nil, err
	}
	if b.Facilities, err = s.repos.Lookups.List(ctx, domain.LookupFacilities); err != nil {
		return nil, err
	}
	if b.SocialLinks, err = s.repos.Settings.SocialLinks(ctx); err != nil {
		return nil, err
	}
	if b.Accounts, err = s.repos.Accounts.List(ctx); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

func (s *backupService) Parse(data []byte) (*Backup, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	for _, name := range []string{"kostData", "historyLog", "campuses", "facilities", "accounts"} {
		if !isJSONKind(fields[name], '[') {
			return nil, fmt.Errorf("%w: %s must be a list", ErrInvalidBackup, name)
		}
	}
	if !isJSONKind(fields["socialLinks"], '{') {
		return nil, fmt.Errorf("%w: socialLinks must be an object", ErrInvalidBackup)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return &b, nil
}

func (s *backupService) Import(ctx context.Context, actor *domain.Account, data []byte) (*Backup, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	b, err := s.Parse(data)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Kosts.Save(ctx, b.KostData); err != nil {
			return err
		}
		if err := r.History.Save(ctx, b.HistoryLog); err != nil {
			return err
		}
		if err := r.Lookups.Save(ctx, domain.LookupCampuses, b.Campuses); err != nil {
			return err
		}
		if err := r.Lookups.Save(ctx, domain.LookupFacilities, b.Facilities); err != nil {
			return err
		}
		if err := r.Settings.SaveSocialLinks(ctx, b.SocialLinks); err != nil {
			return err
		}
		return r.Accounts.Save(ctx, b.Accounts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import backup: %w", err)
	}

	s.log.Info("backup imported",
		zap.Int("kosts", len(b.KostData)),
		zap.Int("history", len(b.HistoryLog)),
		zap.String("by", actor.Username),
	)
	return b, nil
}

func (s *backupService) Reset(ctx context.Context) error {
	if err := s.repos.Store.Delete(ctx, repository.AllKeys...); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	s.log.Warn("all data reset")
	return nil
}

// isJSONKind reports whether raw starts with the given delimiter
func isJSONKind(raw json.RawMessage, delim byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == delim
}
