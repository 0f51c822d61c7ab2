package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/catalog"
	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/db"
)

// PlayerSheetReader reads a catalog tab from a spreadsheet
type PlayerSheetReader interface {
	ListPlayers(spreadsheetID, tab string) (*catalog.Result, error)
}

// SourceProviders lazily supply the clients a catalog source may need.
// Only the provider matching the configured source is called.
type SourceProviders struct {
	Sheets func() (PlayerSheetReader, error)
	Store  func() (db.CatalogStore, error)
}

// sheetSource loads the catalog from a spreadsheet tab
type sheetSource struct {
	reader        PlayerSheetReader
	spreadsheetID string
	tab           string
}

func (s *sheetSource) Load(ctx context.Context) (*catalog.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.reader.ListPlayers(s.spreadsheetID, s.tab)
}

// NewCatalogSource builds the catalog source named in the config
func NewCatalogSource(cfg *config.Config, providers SourceProviders, logger *zap.Logger) (catalog.Source, error) {
	opts := catalog.ParseOptions{Delimiter: cfg.Delimiter()}

	switch cfg.Catalog.Source {
	case "file":
		return &catalog.FileSource{Path: cfg.Catalog.Path, Options: opts}, nil
	case "http":
		return catalog.NewHTTPSource(cfg.Catalog.URL, opts, logger, cfg.Catalog.FetchAttempts, 0), nil
	case "sheets":
		if providers.Sheets == nil {
			return nil, fmt.Errorf("no sheets client available for the sheets catalog source")
		}
		reader, err := providers.Sheets()
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		return &sheetSource{reader: reader, spreadsheetID: cfg.Catalog.SheetID, tab: cfg.Catalog.Tab}, nil
	case "postgres":
		if providers.Store == nil {
			return nil, fmt.Errorf("no database available for the postgres catalog source")
		}
		store, err := providers.Store()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &catalog.StoreSource{Store: store}, nil
	}

	return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

// LoadCatalog loads the catalog and logs what the parser dropped or filled in
func LoadCatalog(ctx context.Context, source catalog.Source, logger *zap.Logger) (*catalog.Result, error) {
	logger.Debug("Loading catalog")
	result, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger.Info("Catalog loaded",
		zap.Int("rows", result.Report.Rows),
		zap.Int("players", len(result.Players)),
		zap.Int("excluded", result.Report.Excluded))

	if result.Report.Excluded > 0 {
		logger.Warn("Players excluded for unrecognised roles", zap.Strings("names", result.Report.ExcludedNames))
	}
	for _, col := range catalog.RequiredColumns {
		if n := result.Report.Imputed[col]; n > 0 {
			logger.Debug("Imputed missing values", zap.String("column", string(col)), zap.Int("count", n))
		}
	}

	return result, nil
}

// ImportCatalogResult summarises a catalog import
type ImportCatalogResult struct {
	Report   catalog.Report
	Imported int
	DryRun   bool
}

// ImportCatalog loads the catalog from source and upserts it into the store.
// If dryRun is true, nothing is written.
func ImportCatalog(
	ctx context.Context,
	source catalog.Source,
	store db.CatalogStore,
	logger *zap.Logger,
	dryRun bool,
) (*ImportCatalogResult, error) {
	logger.Debug("Starting importCatalog", zap.Bool("dry_run", dryRun))

	result, err := LoadCatalog(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	if len(result.Players) == 0 {
		return nil, fmt.Errorf("catalog has no usable players")
	}

	records := db.ToPlayerRecords(result.Players, time.Now().UTC())

	if dryRun {
		logger.Info("Dry run mode - players not saved", zap.Int("count", len(records)))
		return &ImportCatalogResult{Report: result.Report, DryRun: true}, nil
	}

	if err := store.UpsertPlayers(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save players: %w", err)
	}
	logger.Info("Players saved", zap.Int("count", len(records)))

	return &ImportCatalogResult{Report: result.Report, Imported: len(records)}, nil
}

// PlayerFilter narrows a catalog listing
type PlayerFilter struct {
	Role  model.Role
	Club  string
	Limit int
}

// ListPlayers loads the catalog and returns the matching players, most expensive first
func ListPlayers(ctx context.Context, source catalog.Source, logger *zap.Logger, filter PlayerFilter) ([]model.Player, error) {
	result, err := LoadCatalog(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	var players []model.Player
	for _, p := range result.Players {
		if filter.Role != "" && !p.HasRole(filter.Role) {
			continue
		}
		if filter.Club != "" && !strings.EqualFold(p.Club, filter.Club) {
			continue
		}
		players = append(players, p)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Cost != players[j].Cost {
			return players[i].Cost > players[j].Cost
		}
		return players[i].Name < players[j].Name
	})

	if filter.Limit > 0 && len(players) > filter.Limit {
		players = players[:filter.Limit]
	}

	logger.Debug("Filtered players",
		zap.String("role", string(filter.Role)),
		zap.String("club", filter.Club),
		zap.Int("count", len(players)))

	return players, nil
}
