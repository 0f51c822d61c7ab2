package services

import (
	"fmt"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
)

// ListStrategies returns the built-in strategies followed by the configured ones
func ListStrategies(cfg *config.Config) ([]*roster.Strategy, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy registry: %w", err)
	}
	return registry.All(), nil
}
