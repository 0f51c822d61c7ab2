package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/catalog"
	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
	"github.com/fantaelite/draftmaster/pkg/db"
)

// GenerateRosterOptions override the generation defaults from the config.
// Zero values keep the configured (or built-in) default.
type GenerateRosterOptions struct {
	Strategy    string
	Budget      float64
	Percentage  bool
	MinPct      float64
	MaxPct      float64
	MaxAttempts int
	Seed        *uint64
	Reference   string
	Baseline    float64
	MultiRole   string
	MaxPerClub  int
}

// GenerateRosterResult contains the generation outcome and the catalog it ran on
type GenerateRosterResult struct {
	Outcome *roster.Outcome
	Catalog catalog.Report
	Saved   bool
}

// BuildGenerateConfig merges the config defaults with opts into an engine request
func BuildGenerateConfig(cfg *config.Config, players []model.Player, opts GenerateRosterOptions) (roster.GenerateConfig, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return roster.GenerateConfig{}, fmt.Errorf("failed to build strategy registry: %w", err)
	}

	quota, err := cfg.Quota()
	if err != nil {
		return roster.GenerateConfig{}, fmt.Errorf("failed to build quota: %w", err)
	}

	gen := cfg.Generation
	band := cfg.Band()
	if opts.MinPct > 0 {
		band.MinPct = opts.MinPct
	}
	if opts.MaxPct > 0 {
		band.MaxPct = opts.MaxPct
	}

	mode := roster.ModeAbsolute
	budget := firstNonZero(opts.Budget, gen.Budget)
	if opts.Percentage {
		// the configured budget is in credits; a percentage request defaults to the whole budget
		mode = roster.ModePercentage
		budget = firstNonZero(opts.Budget, 100)
	}

	maxPerClub := firstNonZero(opts.MaxPerClub, gen.MaxPerClub)
	criteria := []roster.Criterion{roster.NewRoleShareCriterion()}
	if maxPerClub > 0 {
		criteria = append(criteria, roster.NewClubLimitCriterion(maxPerClub))
	}

	return roster.GenerateConfig{
		Players:       players,
		Registry:      registry,
		Strategy:      firstNonEmpty(opts.Strategy, gen.Strategy),
		Mode:          mode,
		Budget:        budget,
		Reference:     roster.Reference(firstNonEmpty(opts.Reference, gen.Reference)),
		Baseline:      firstNonZero(opts.Baseline, gen.Baseline),
		Quota:         quota,
		Band:          band,
		MaxAttempts:   firstNonZero(opts.MaxAttempts, gen.MaxAttempts),
		Seed:          opts.Seed,
		MultiRoleMode: roster.MultiRoleMode(firstNonEmpty(opts.MultiRole, gen.MultiRole)),
		Criteria:      criteria,
	}, nil
}

// GenerateRoster loads the catalog and runs the roster engine.
// The outcome is recorded in history unless history is nil or dryRun is true.
// Failed and best-effort outcomes are still returned without error; only bad
// requests and infrastructure failures produce an error.
func GenerateRoster(
	ctx context.Context,
	source catalog.Source,
	history db.GenerationStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateRosterOptions,
	dryRun bool,
) (*GenerateRosterResult, error) {
	logger.Debug("Starting generateRoster",
		zap.String("strategy", opts.Strategy),
		zap.Float64("budget", opts.Budget),
		zap.Bool("dry_run", dryRun))

	result, err := LoadCatalog(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	genConfig, err := BuildGenerateConfig(cfg, result.Players, opts)
	if err != nil {
		return nil, err
	}

	logger.Info("Running roster generation",
		zap.String("strategy", genConfig.Strategy),
		zap.Float64("budget", genConfig.Budget),
		zap.Float64("min_pct", genConfig.Band.MinPct),
		zap.Float64("max_pct", genConfig.Band.MaxPct))

	outcome, err := roster.Generate(ctx, genConfig)
	if err != nil {
		return nil, fmt.Errorf("roster generation failed: %w", err)
	}

	logger.Info("Roster generation completed",
		zap.String("id", outcome.ID),
		zap.String("status", string(outcome.Status)),
		zap.Float64("total_cost", outcome.TotalCost),
		zap.Int("attempts", outcome.Attempts))

	for _, warning := range outcome.Warnings {
		logger.Warn("Generation warning", zap.String("warning", warning))
	}
	for _, verr := range outcome.ValidationErrors {
		logger.Warn("Validation error",
			zap.String("criterion", verr.CriterionName),
			zap.String("role", string(verr.Role)),
			zap.String("player", verr.PlayerName),
			zap.Bool("advisory", verr.Advisory),
			zap.String("description", verr.Description))
	}

	res := &GenerateRosterResult{Outcome: outcome, Catalog: result.Report}

	switch {
	case dryRun:
		logger.Info("Dry run mode - generation not recorded")
	case history == nil:
		logger.Debug("No history store configured - generation not recorded")
	default:
		generation, picks := db.ToGenerationRecords(outcome, time.Now().UTC())
		if err := history.InsertGeneration(ctx, generation, picks); err != nil {
			return nil, fmt.Errorf("failed to record generation: %w", err)
		}
		res.Saved = true
		logger.Info("Generation recorded", zap.String("id", outcome.ID), zap.Int("picks", len(picks)))
	}

	return res, nil
}
