// Package cli provides the folio CLI built on Bubble Tea.
package cli

import (
	"context"
	"fmt"

	"github.com/foliolabs/folio/internal/application/usecase"
	"github.com/foliolabs/folio/internal/cli/styles"
	"github.com/foliolabs/folio/internal/config"
	"github.com/foliolabs/folio/internal/domain/build"
	"github.com/foliolabs/folio/internal/domain/repository"
	"github.com/foliolabs/folio/internal/infrastructure/persistence/sqlite"
	"github.com/foliolabs/folio/internal/logging"
)

// App holds CLI dependencies. The database opens lazily so commands that
// never touch persistence skip the connection cost.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	ViewStates repository.ViewStateRepository

	RememberViewUC *usecase.RememberViewUseCase
	ListViewsUC    *usecase.ListViewsUseCase
	PurgeViewsUC   *usecase.PurgeViewsUseCase

	db  *sqlite.LazyDB
	ctx context.Context
}

// NewApp creates a CLI application with all dependencies.
func NewApp() (*App, error) {
	cfg := loadConfig()
	theme := styles.NewTheme()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	dbFile := cfg.Database.Path
	if dbFile == "" {
		var err error
		dbFile, err = config.GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	lazyDB := sqlite.NewLazyDB(dbFile)
	app := &App{
		Config: cfg,
		Theme:  theme,
		db:     lazyDB,
		ctx:    ctx,
	}

	return app, nil
}

// OpenRepositories establishes the database connection and builds the
// repositories and use cases on top of it.
func (a *App) OpenRepositories() error {
	db, err := a.db.DB(a.ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	a.ViewStates = sqlite.NewViewStateRepository(db)
	a.RememberViewUC = usecase.NewRememberViewUseCase(a.ViewStates)
	a.ListViewsUC = usecase.NewListViewsUseCase(a.ViewStates)
	a.PurgeViewsUC = usecase.NewPurgeViewsUseCase(a.ViewStates)
	return nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from the standard locations, falling
// back to defaults when no file can be read.
func loadConfig() *config.Config {
	mgr, err := config.NewManager()
	if err != nil {
		return config.DefaultConfig()
	}
	if err := mgr.Load(); err != nil {
		return config.DefaultConfig()
	}
	return mgr.Get()
}
