package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
	"github.com/fantaelite/draftmaster/pkg/export"
)

// RosterPublisher writes a roster to a spreadsheet and returns the tab it wrote
type RosterPublisher interface {
	PublishRoster(spreadsheetID string, outcome *roster.Outcome, generatedAt time.Time) (string, error)
}

// PublishRoster publishes a generated roster to the configured spreadsheet.
// Failed outcomes have no roster and cannot be published.
func PublishRoster(
	ctx context.Context,
	publisher RosterPublisher,
	cfg *config.Config,
	outcome *roster.Outcome,
	logger *zap.Logger,
) (string, error) {
	if cfg.Publish.SheetID == "" {
		return "", fmt.Errorf("publish.sheetID is not configured")
	}
	if outcome == nil || outcome.Roster == nil {
		return "", fmt.Errorf("cannot publish: %w", export.ErrNoRoster)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !outcome.Succeeded() {
		logger.Warn("Publishing a roster outside the budget band", zap.String("status", string(outcome.Status)))
	}

	tab, err := publisher.PublishRoster(cfg.Publish.SheetID, outcome, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to publish roster: %w", err)
	}

	logger.Info("Roster published", zap.String("id", outcome.ID), zap.String("tab", tab))
	return tab, nil
}

// ExportRoster writes a generated roster to a delimited file
func ExportRoster(outcome *roster.Outcome, path string, delimiter rune, logger *zap.Logger) error {
	if err := export.WriteFile(path, outcome, delimiter); err != nil {
		return fmt.Errorf("failed to export roster: %w", err)
	}

	logger.Info("Roster exported", zap.String("path", path))
	return nil
}
