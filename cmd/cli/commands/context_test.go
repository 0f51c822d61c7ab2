package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/internal/config"
)

// catalogCSV renders a catalog large enough to fill the default quota several times over
func catalogCSV() string {
	var b strings.Builder
	b.WriteString("Nome;Squadra;Ruolo;Media_Voto;Fantamedia;Quotazione;Partite_Voto\n")

	clubs := []string{"Inter", "Milan", "Roma", "Lazio", "Napoli", "Torino"}
	roles := []struct {
		label string
		count int
		base  int
	}{
		{"P", 10, 4},
		{"D", 24, 4},
		{"C", 24, 6},
		{"A", 18, 8},
	}
	for _, role := range roles {
		for i := 0; i < role.count; i++ {
			fmt.Fprintf(&b, "%s%d;%s;%s;6,%d;%d,5;%d;%d\n",
				role.label, i, clubs[i%len(clubs)], role.label, i%10, 5+i%4, role.base+i*2, 10+i)
		}
	}
	return b.String()
}

func newCatalogServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	body := catalogCSV()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestApp(url string) *AppContext {
	return &AppContext{
		Cfg: &config.Config{
			Catalog:    config.CatalogConfig{Source: "http", URL: url},
			Generation: config.GenerationConfig{Budget: 500},
		},
		Logger: zap.NewNop(),
		Ctx:    context.Background(),
	}
}

func TestSession_LoadsCatalogOnce(t *testing.T) {
	server, hits := newCatalogServer(t)
	app := newTestApp(server.URL)

	commands := map[string]*cobra.Command{
		"generate":    GenerateCmd(app),
		"listPlayers": ListPlayersCmd(app),
	}
	input := strings.NewReader("generate --seed 1 -b 500\ngenerate --seed 1 -b 500\nlistPlayers --role P\nquit\n")
	require.NoError(t, runSession(input, commands))

	assert.Equal(t, int32(1), hits.Load())
	require.NotNil(t, app.LastOutcome)
}

func TestSession_SeededGenerationsShareTheCatalog(t *testing.T) {
	server, _ := newCatalogServer(t)
	app := newTestApp(server.URL)
	generate := GenerateCmd(app)

	require.NoError(t, runSessionCommand(generate, []string{"--seed", "7", "-b", "500"}))
	first := app.LastOutcome
	require.NoError(t, runSessionCommand(generate, []string{"--seed", "7", "-b", "500"}))
	second := app.LastOutcome

	require.NotNil(t, first.Roster)
	require.NotNil(t, second.Roster)
	assert.Equal(t, first.TotalCost, second.TotalCost)
	assert.Equal(t, first.Roster.Picks, second.Roster.Picks)
}

func TestCatalogSource_IsReused(t *testing.T) {
	app := newTestApp("https://example.com/players.csv")

	first, err := app.CatalogSource()
	require.NoError(t, err)
	second, err := app.CatalogSource()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
