package db

import "context"

// CatalogStore defines the interface for player catalog operations
type CatalogStore interface {
	GetPlayers(ctx context.Context) ([]PlayerRecord, error)
	UpsertPlayers(ctx context.Context, players []PlayerRecord) error
}

// GenerationStore defines the interface for roster generation history
type GenerationStore interface {
	GetGenerations(ctx context.Context) ([]GenerationRecord, error)
	GetRosterPicks(ctx context.Context, generationID string) ([]RosterPickRecord, error)
	InsertGeneration(ctx context.Context, generation GenerationRecord, picks []RosterPickRecord) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	CatalogStore
	GenerationStore
}
