package postgres

import (
	"context"
	"fmt"

	"github.com/fantaelite/draftmaster/pkg/db"
)

// GetGenerations retrieves the generation history, newest first
func (d *DB) GetGenerations(ctx context.Context) ([]db.GenerationRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, strategy, status, budget::float8, total_cost::float8, min_pct, max_pct, attempts,
			COALESCE(reason, ''), created_at
		FROM generation
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var generations []db.GenerationRecord
	for rows.Next() {
		var g db.GenerationRecord
		if err := rows.Scan(&g.ID, &g.Strategy, &g.Status, &g.Budget, &g.TotalCost, &g.MinPct, &g.MaxPct,
			&g.Attempts, &g.Reason, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		generations = append(generations, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generations: %w", err)
	}

	return generations, nil
}

// GetRosterPicks retrieves the picks of one generation
func (d *DB) GetRosterPicks(ctx context.Context, generationID string) ([]db.RosterPickRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT generation_id::text, player_id, player_name, club, role, cost::float8, score
		FROM roster_pick
		WHERE generation_id = $1
		ORDER BY role, cost DESC, player_name
	`, generationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster picks: %w", err)
	}
	defer rows.Close()

	var picks []db.RosterPickRecord
	for rows.Next() {
		var p db.RosterPickRecord
		if err := rows.Scan(&p.GenerationID, &p.PlayerID, &p.PlayerName, &p.Club, &p.Role, &p.Cost, &p.Score); err != nil {
			return nil, fmt.Errorf("failed to scan roster pick: %w", err)
		}
		picks = append(picks, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster picks: %w", err)
	}

	return picks, nil
}

// InsertGeneration stores a generation and its picks in one transaction
func (d *DB) InsertGeneration(ctx context.Context, generation db.GenerationRecord, picks []db.RosterPickRecord) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var reason *string
	if generation.Reason != "" {
		reason = &generation.Reason
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO generation (id, strategy, status, budget, total_cost, min_pct, max_pct, attempts, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, generation.ID, generation.Strategy, generation.Status, generation.Budget, generation.TotalCost,
		generation.MinPct, generation.MaxPct, generation.Attempts, reason, generation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}

	for _, p := range picks {
		_, err := tx.Exec(ctx, `
			INSERT INTO roster_pick (generation_id, player_id, player_name, club, role, cost, score)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.GenerationID, p.PlayerID, p.PlayerName, p.Club, p.Role, p.Cost, p.Score)
		if err != nil {
			return fmt.Errorf("failed to insert roster pick: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
