package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/dewakost/dewakost/internal/config"
	"github.com/dewakost/dewakost/internal/crypto"
	"github.com/dewakost/dewakost/internal/db"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/logging"
	"github.com/dewakost/dewakost/internal/repository"
	"github.com/dewakost/dewakost/internal/service"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Log    *zap.Logger

	// Repositories
	Store *repository.SQLStore
	Repos repository.Repositories

	// Services
	KostService     service.KostService
	LookupService   service.LookupService
	AccountService  service.AccountService
	BackupService   service.BackupService
	SettingsService service.SettingsService

	closeLog func() error
}

// New loads the default config and builds the App
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
		Path:   cfg.Log.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	password := ""
	if cfg.Database.Encrypt {
		password, err = crypto.ResolveKey(crypto.NewKeyring(), promptForPassword)
		if err != nil {
			closeLog()
			return nil, err
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		closeLog()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := repository.NewSQLStore(database, logger.Named("store"))
	repos := store.Repositories()

	logger.Debug("app started",
		zap.String("db", cfg.Database.Path),
		zap.Bool("encrypted", database.Encrypted),
	)

	return &App{
		Config:          cfg,
		DB:              database,
		Log:             logger,
		Store:           store,
		Repos:           repos,
		KostService:     service.NewKostService(repos, store, logger.Named("kost")),
		LookupService:   service.NewLookupService(repos, store, logger.Named("lookup")),
		AccountService:  service.NewAccountService(repos, store, logger.Named("account")),
		BackupService:   service.NewBackupService(repos, store, logger.Named("backup")),
		SettingsService: service.NewSettingsService(repos),
		closeLog:        closeLog,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
	}
	return errors.Join(errs...)
}

// Actor returns the logged-in admin, or service.ErrUnauthenticated
func (a *App) Actor(ctx context.Context) (*domain.Account, error) {
	acc, err := a.AccountService.Current(ctx)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, service.ErrUnauthenticated
	}
	return acc, nil
}

// DefaultFilter is the filter a fresh browse session starts with
func (a *App) DefaultFilter() domain.FilterState {
	return domain.NewFilterState(a.Config.Listing.DefaultMaxPrice)
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// promptForPassword asks for a new database key on first run
func promptForPassword() (string, error) {
	fmt.Fprintln(os.Stderr, "Setting up database encryption for the first time...")
	fmt.Fprintln(os.Stderr, "The key will be kept in your system keyring where available.")
	fmt.Fprint(os.Stderr, "Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return "", errors.New("password cannot be empty")
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", errors.New("passwords do not match")
	}

	return string(password), nil
}
