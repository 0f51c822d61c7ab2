package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/catalog"
	"github.com/fantaelite/draftmaster/pkg/clients/sheetsclient"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
	"github.com/fantaelite/draftmaster/pkg/core/services"
	"github.com/fantaelite/draftmaster/pkg/db"
	"github.com/fantaelite/draftmaster/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// The Sheets client, the database and the catalog are opened on first use, so commands
// that need none of them run without OAuth or a database.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	sheetsClient  *sheetsclient.Client
	database      *postgres.DB
	catalogSource *catalog.CachedSource

	// LastOutcome is the most recent generation of this session
	LastOutcome *roster.Outcome
}

// Sheets returns the Sheets client, authenticating on first use
func (app *AppContext) Sheets() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	app.sheetsClient = client
	return client, nil
}

// Database returns the PostgreSQL store, connecting and migrating on first use
func (app *AppContext) Database() (db.Database, error) {
	if app.database != nil {
		return app.database, nil
	}

	if app.Cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("databaseURL is not configured")
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Debug("Running migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app.database = database
	return database, nil
}

// CatalogSource returns the configured catalog source. The catalog is read once per
// process and every command gets a copy of that base catalog.
func (app *AppContext) CatalogSource() (*catalog.CachedSource, error) {
	if app.catalogSource != nil {
		return app.catalogSource, nil
	}

	source, err := services.NewCatalogSource(app.Cfg, services.SourceProviders{
		Sheets: func() (services.PlayerSheetReader, error) { return app.Sheets() },
		Store:  func() (db.CatalogStore, error) { return app.Database() },
	}, app.Logger)
	if err != nil {
		return nil, err
	}

	app.catalogSource = catalog.NewCachedSource(source)
	return app.catalogSource, nil
}

// Close releases the database connection if one was opened
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
		app.database = nil
	}
}
