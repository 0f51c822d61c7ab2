package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
)

func TestPlayerID_StableWithoutID(t *testing.T) {
	p := model.Player{Name: "Rossi", Club: "Roma"}

	id := PlayerID(p)
	assert.Len(t, id, 36)
	assert.Equal(t, id, PlayerID(p))
	assert.NotEqual(t, id, PlayerID(model.Player{Name: "Rossi", Club: "Lazio"}))
	assert.Equal(t, "p-7", PlayerID(model.Player{ID: "p-7", Name: "Rossi"}))
}

func TestPlayerRecords_RoundTrip(t *testing.T) {
	importedAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	players := []model.Player{
		{ID: "p-1", Name: "Bianchi", Club: "Inter", Roles: []model.Role{model.RoleDefender, model.RoleMidfielder},
			SeasonAverageRating: 6.1, FantasyAverage: 6.4, Appearances: 30, Cost: 12},
		{ID: "p-2", Name: "Verdi", Club: "Milan", Roles: []model.Role{model.RoleForward}, Cost: 40},
	}

	records := ToPlayerRecords(players, importedAt)
	require.Len(t, records, 2)
	assert.Equal(t, "D;C", records[0].Roles)
	assert.Equal(t, "A", records[1].Roles)
	assert.Equal(t, importedAt, records[0].ImportedAt)

	for i, record := range records {
		assert.Equal(t, players[i], record.ToPlayer())
	}
}

func TestToGenerationRecords(t *testing.T) {
	outcome := &roster.Outcome{
		ID:        "gen-1",
		Status:    roster.StatusBestEffort,
		Budget:    500,
		TotalCost: 451.5,
		Band:      roster.DefaultBand(),
		Strategy:  "Balanced",
		Attempts:  50,
		Reason:    errors.New("budget unreachable"),
		Roster: &roster.Roster{Picks: []roster.Candidate{
			{Player: model.Player{ID: "p-1", Name: "Neri", Club: "Roma", Cost: 10}, Role: model.RoleGoalkeeper, Score: 0.5},
		}},
	}

	generation, picks := ToGenerationRecords(outcome, time.Unix(0, 0))
	assert.Equal(t, "BestEffort", generation.Status)
	assert.Equal(t, "budget unreachable", generation.Reason)
	assert.Equal(t, 95.0, generation.MinPct)
	require.Len(t, picks, 1)
	assert.Equal(t, RosterPickRecord{
		GenerationID: "gen-1", PlayerID: "p-1", PlayerName: "Neri", Club: "Roma", Role: "P", Cost: 10, Score: 0.5,
	}, picks[0])

	outcome.Roster = nil
	_, picks = ToGenerationRecords(outcome, time.Unix(0, 0))
	assert.Empty(t, picks)
}
