package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/catalog"
	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/db"
)

func TestNewCatalogSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Nome,Squadra,Ruolo,Mv,Fm,Quotazione,Pv\nMaignan,Milan,P,6.4,5.1,18,34\n"), 0644))

	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{Source: "file", Path: path, Delimiter: ","}

	source, err := NewCatalogSource(cfg, SourceProviders{}, zap.NewNop())
	require.NoError(t, err)

	result, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "Maignan", result.Players[0].Name)
}

func TestNewCatalogSource_HTTP(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{Source: "http", URL: "https://example.com/players.csv"}

	source, err := NewCatalogSource(cfg, SourceProviders{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &catalog.HTTPSource{}, source)
}

func TestNewCatalogSource_SheetsIsLazy(t *testing.T) {
	reader := &mockSheetReader{result: &catalog.Result{Players: testPlayers()[:2]}}
	called := 0
	providers := SourceProviders{
		Sheets: func() (PlayerSheetReader, error) { called++; return reader, nil },
		Store:  func() (db.CatalogStore, error) { t.Fatal("store must not be opened"); return nil, nil },
	}

	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{Source: "sheets", SheetID: "abc", Tab: "Listone"}

	source, err := NewCatalogSource(cfg, providers, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, called)

	result, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Players, 2)
	assert.Equal(t, "abc", reader.spreadsheetID)
	assert.Equal(t, "Listone", reader.tab)
}

func TestNewCatalogSource_Postgres(t *testing.T) {
	store := &mockCatalogStore{players: []db.PlayerRecord{{ID: "p-1", Name: "Neri", Roles: "A", Cost: 30}}}
	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{Source: "postgres"}

	source, err := NewCatalogSource(cfg, SourceProviders{
		Store: func() (db.CatalogStore, error) { return store, nil },
	}, zap.NewNop())
	require.NoError(t, err)

	result, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Players, 1)
	assert.Equal(t, model.RoleForward, result.Players[0].PrimaryRole())
}

func TestNewCatalogSource_ProviderErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{Source: "postgres"}

	_, err := NewCatalogSource(cfg, SourceProviders{}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewCatalogSource(cfg, SourceProviders{
		Store: func() (db.CatalogStore, error) { return nil, errors.New("connection refused") },
	}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")

	cfg.Catalog = config.CatalogConfig{Source: "ftp"}
	_, err = NewCatalogSource(cfg, SourceProviders{}, zap.NewNop())
	assert.Error(t, err)
}

func TestImportCatalog_SavesPlayers(t *testing.T) {
	store := &mockCatalogStore{}

	result, err := ImportCatalog(context.Background(), sourceOf(testPlayers()), store, zap.NewNop(), false)
	require.NoError(t, err)

	assert.Equal(t, 270, result.Imported)
	assert.False(t, result.DryRun)
	require.Len(t, store.players, 270)
	assert.Equal(t, "P-0", store.players[0].ID)
	assert.Equal(t, "P", store.players[0].Roles)
}

func TestImportCatalog_DryRun(t *testing.T) {
	store := &mockCatalogStore{}

	result, err := ImportCatalog(context.Background(), sourceOf(testPlayers()), store, zap.NewNop(), true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Zero(t, result.Imported)
	assert.Empty(t, store.players)
}

func TestImportCatalog_Errors(t *testing.T) {
	_, err := ImportCatalog(context.Background(), sourceOf(nil), &mockCatalogStore{}, zap.NewNop(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable players")

	_, err = ImportCatalog(context.Background(), &mockSource{err: errors.New("boom")}, &mockCatalogStore{}, zap.NewNop(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")

	_, err = ImportCatalog(context.Background(), sourceOf(testPlayers()), &mockCatalogStore{err: errors.New("boom")}, zap.NewNop(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save players")
}

func TestListPlayers_FilterAndOrder(t *testing.T) {
	players, err := ListPlayers(context.Background(), sourceOf(testPlayers()), zap.NewNop(),
		PlayerFilter{Role: model.RoleForward, Club: "inter", Limit: 3})
	require.NoError(t, err)

	require.Len(t, players, 3)
	for i, p := range players {
		assert.Equal(t, "Inter", p.Club)
		assert.True(t, p.HasRole(model.RoleForward))
		if i > 0 {
			assert.GreaterOrEqual(t, players[i-1].Cost, p.Cost)
		}
	}
}

func TestListPlayers_NoFilter(t *testing.T) {
	players, err := ListPlayers(context.Background(), sourceOf(testPlayers()), zap.NewNop(), PlayerFilter{})
	require.NoError(t, err)
	assert.Len(t, players, 270)
	assert.Equal(t, 44.0, players[0].Cost)
}
