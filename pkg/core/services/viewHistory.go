package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/db"
)

// GenerationDetail is a stored generation with its picks
type GenerationDetail struct {
	Generation db.GenerationRecord
	Picks      []db.RosterPickRecord
}

// ViewHistory returns the most recent stored generations with their picks, newest first.
// A limit of 0 returns every generation.
func ViewHistory(ctx context.Context, store db.GenerationStore, logger *zap.Logger, limit int) ([]GenerationDetail, error) {
	logger.Debug("Fetching generations")
	generations, err := store.GetGenerations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch generations: %w", err)
	}
	logger.Debug("Found generations", zap.Int("count", len(generations)))

	if limit > 0 && len(generations) > limit {
		generations = generations[:limit]
	}

	details := make([]GenerationDetail, 0, len(generations))
	for _, generation := range generations {
		picks, err := store.GetRosterPicks(ctx, generation.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch picks for generation %s: %w", generation.ID, err)
		}
		details = append(details, GenerationDetail{Generation: generation, Picks: picks})
	}

	return details, nil
}
