package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fantaelite/draftmaster/pkg/db"
)

// GetPlayers retrieves the stored catalog ordered by name
func (d *DB) GetPlayers(ctx context.Context) ([]db.PlayerRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, club, roles, season_average_rating, fantasy_average, appearances, cost::float8, imported_at
		FROM player
		ORDER BY name, club
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []db.PlayerRecord
	for rows.Next() {
		var p db.PlayerRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Club, &p.Roles, &p.SeasonAverageRating,
			&p.FantasyAverage, &p.Appearances, &p.Cost, &p.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

// UpsertPlayers inserts players, replacing the stored values of existing IDs
func (d *DB) UpsertPlayers(ctx context.Context, players []db.PlayerRecord) error {
	if len(players) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(`
			INSERT INTO player (id, name, club, roles, season_average_rating, fantasy_average, appearances, cost, imported_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				club = EXCLUDED.club,
				roles = EXCLUDED.roles,
				season_average_rating = EXCLUDED.season_average_rating,
				fantasy_average = EXCLUDED.fantasy_average,
				appearances = EXCLUDED.appearances,
				cost = EXCLUDED.cost,
				imported_at = EXCLUDED.imported_at
		`, p.ID, p.Name, p.Club, p.Roles, p.SeasonAverageRating, p.FantasyAverage, p.Appearances, p.Cost, p.ImportedAt)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
