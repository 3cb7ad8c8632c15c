package service

import (
	"context"
	"fmt"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/repository"
)

// SettingsService manages the footer social links
type SettingsService interface {
	SocialLinks(ctx context.Context) (domain.SocialLinks, error)
	UpdateSocialLinks(ctx context.Context, actor *domain.Account, links domain.SocialLinks) error
}

type settingsService struct {
	repos repository.Repositories
}

// NewSettingsService creates a new settings service
func NewSettingsService(repos repository.Repositories) SettingsService {
	return &settingsService{repos: repos}
}

func (s *settingsService) SocialLinks(ctx context.Context) (domain.SocialLinks, error) {
	return s.repos.Settings.SocialLinks(ctx)
}

func (s *settingsService) UpdateSocialLinks(ctx context.Context, actor *domain.Account, links domain.SocialLinks) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	links.Normalize()
	if err := links.Validate(); err != nil {
		return fmt.Errorf("invalid social links: %w", err)
	}

	return s.repos.Settings.SaveSocialLinks(ctx, links)
}
