package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/db"
)

func TestViewHistory_WithPicks(t *testing.T) {
	store := &mockGenerationStore{
		generations: []db.GenerationRecord{{ID: "g-2"}, {ID: "g-1"}},
		picks: map[string][]db.RosterPickRecord{
			"g-2": {{GenerationID: "g-2", PlayerName: "Neri"}},
			"g-1": {{GenerationID: "g-1", PlayerName: "Rossi"}, {GenerationID: "g-1", PlayerName: "Verdi"}},
		},
	}

	details, err := ViewHistory(context.Background(), store, zap.NewNop(), 0)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "g-2", details[0].Generation.ID)
	assert.Len(t, details[1].Picks, 2)

	details, err = ViewHistory(context.Background(), store, zap.NewNop(), 1)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Neri", details[0].Picks[0].PlayerName)
}

func TestViewHistory_StoreError(t *testing.T) {
	_, err := ViewHistory(context.Background(), &mockGenerationStore{err: errors.New("down")}, zap.NewNop(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch generations")
}
