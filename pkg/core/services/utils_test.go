package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/catalog"
	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
	"github.com/fantaelite/draftmaster/pkg/db"
)

var testClubs = []string{"Atalanta", "Bologna", "Inter", "Juventus", "Lazio", "Milan", "Napoli", "Roma", "Torino", "Udinese"}

// testPlayers builds a catalog priced on the 500-credit baseline
func testPlayers() []model.Player {
	var players []model.Player
	add := func(role model.Role, n, maxCost int) {
		for i := 0; i < n; i++ {
			players = append(players, model.Player{
				ID:                  fmt.Sprintf("%s-%d", role.Short(), i),
				Name:                fmt.Sprintf("%s %d", role, i),
				Club:                testClubs[i%len(testClubs)],
				Roles:               []model.Role{role},
				SeasonAverageRating: 5.5 + float64(i%10)/10,
				FantasyAverage:      5 + float64((i*7)%30)/10,
				Appearances:         (i * 3) % 39,
				Cost:                float64(1 + (i*13)%maxCost),
			})
		}
	}
	add(model.RoleGoalkeeper, 50, 24)
	add(model.RoleDefender, 80, 21)
	add(model.RoleMidfielder, 80, 31)
	add(model.RoleForward, 60, 44)
	return players
}

func testConfig() *config.Config {
	return &config.Config{
		Catalog:    config.CatalogConfig{Source: "file", Path: "players.csv"},
		Generation: config.GenerationConfig{Budget: 500},
		Publish:    config.PublishConfig{SheetID: "sheet-1"},
	}
}

func seed(v uint64) *uint64 {
	return &v
}

// mockSource implements catalog.Source for testing
type mockSource struct {
	result *catalog.Result
	err    error
	calls  int
}

func (m *mockSource) Load(ctx context.Context) (*catalog.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func sourceOf(players []model.Player) *mockSource {
	return &mockSource{result: &catalog.Result{
		Players: players,
		Report:  catalog.Report{Rows: len(players), Imputed: map[catalog.Column]int{}},
	}}
}

// mockCatalogStore implements db.CatalogStore for testing
type mockCatalogStore struct {
	players []db.PlayerRecord
	err     error
}

func (m *mockCatalogStore) GetPlayers(ctx context.Context) ([]db.PlayerRecord, error) {
	return m.players, m.err
}

func (m *mockCatalogStore) UpsertPlayers(ctx context.Context, players []db.PlayerRecord) error {
	if m.err != nil {
		return m.err
	}
	m.players = append(m.players, players...)
	return nil
}

// mockGenerationStore implements db.GenerationStore for testing
type mockGenerationStore struct {
	generations []db.GenerationRecord
	picks       map[string][]db.RosterPickRecord
	err         error
}

func (m *mockGenerationStore) GetGenerations(ctx context.Context) ([]db.GenerationRecord, error) {
	return m.generations, m.err
}

func (m *mockGenerationStore) GetRosterPicks(ctx context.Context, generationID string) ([]db.RosterPickRecord, error) {
	return m.picks[generationID], m.err
}

func (m *mockGenerationStore) InsertGeneration(ctx context.Context, generation db.GenerationRecord, picks []db.RosterPickRecord) error {
	if m.err != nil {
		return m.err
	}
	if m.picks == nil {
		m.picks = make(map[string][]db.RosterPickRecord)
	}
	m.generations = append(m.generations, generation)
	m.picks[generation.ID] = picks
	return nil
}

// mockSheetReader implements PlayerSheetReader for testing
type mockSheetReader struct {
	result        *catalog.Result
	spreadsheetID string
	tab           string
}

func (m *mockSheetReader) ListPlayers(spreadsheetID, tab string) (*catalog.Result, error) {
	m.spreadsheetID = spreadsheetID
	m.tab = tab
	return m.result, nil
}

// mockPublisher implements RosterPublisher for testing
type mockPublisher struct {
	spreadsheetID string
	outcome       *roster.Outcome
	err           error
}

func (m *mockPublisher) PublishRoster(spreadsheetID string, outcome *roster.Outcome, generatedAt time.Time) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.spreadsheetID = spreadsheetID
	m.outcome = outcome
	return outcome.Strategy + " " + generatedAt.Format("2006-01-02"), nil
}
