package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dewakost/dewakost/internal/config"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/history"
	"github.com/dewakost/dewakost/internal/service"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "dewakost.db")
	cfg.Log.Output = "none"

	a, err := NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	if _, err := a.Actor(ctx); !errors.Is(err, service.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated before login, got %v", err)
	}

	if _, err := a.AccountService.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	actor, err := a.Actor(ctx)
	if err != nil {
		t.Fatalf("expected actor after login: %v", err)
	}

	page, err := a.KostService.List(ctx, a.DefaultFilter(), false, 1)
	if err != nil {
		t.Fatal(err)
	}
	seeded := page.TotalItems
	if seeded == 0 {
		t.Fatal("expected seed listings on a fresh database")
	}

	first := page.Items[0]
	if err := a.KostService.Delete(ctx, actor, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	log, err := a.KostService.History(ctx, history.Filter{})
	if err != nil || len(log) != 1 || log[0].Action != domain.ActionDelete {
		t.Fatalf("unexpected history: %+v, %v", log, err)
	}

	if _, err := a.KostService.Restore(ctx, actor, log[0].ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	restored, err := a.KostService.Get(ctx, first.ID, false)
	if err != nil {
		t.Fatalf("expected deleted listing back: %v", err)
	}
	if restored.Name != first.Name {
		t.Errorf("expected %q, got %q", first.Name, restored.Name)
	}

	page, err = a.KostService.List(ctx, a.DefaultFilter(), false, 1)
	if err != nil || page.TotalItems != seeded {
		t.Errorf("expected %d listings after restore, got %d (%v)", seeded, page.TotalItems, err)
	}
}
