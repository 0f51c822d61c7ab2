package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

func assertValidRoster(t *testing.T, outcome *Outcome, quota model.RoleQuota) {
	t.Helper()
	require.NotNil(t, outcome.Roster)

	counts := outcome.Roster.CountByRole()
	for role, want := range quota {
		assert.Equal(t, want, counts[role], role)
	}

	seen := make(map[string]bool)
	for _, pick := range outcome.Roster.Picks {
		assert.False(t, seen[pick.Player.Key()], "duplicate %s", pick.Player.Name)
		seen[pick.Player.Key()] = true
		assert.True(t, EligibleForRole(pick.Player, pick.Role, MultiRoleAny))
	}
}

func TestGenerate_AcceptedWithinBand(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{
		Players: testPool(),
		Budget:  500,
		Seed:    seed(1),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, outcome.Status)
	assert.NoError(t, outcome.Reason)
	assert.NotEmpty(t, outcome.ID)
	assert.Equal(t, "Balanced", outcome.Strategy)
	assert.Equal(t, 25, outcome.Roster.Size())
	assert.GreaterOrEqual(t, outcome.TotalCost, 475.0)
	assert.LessOrEqual(t, outcome.TotalCost, 500.0)
	assert.False(t, HasBlockingErrors(outcome.ValidationErrors))
	assertValidRoster(t, outcome, model.DefaultQuota())
}

func TestGenerate_AllBuiltinStrategies(t *testing.T) {
	for _, name := range DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			outcome, err := Generate(context.Background(), GenerateConfig{
				Players:  testPool(),
				Budget:   500,
				Strategy: name,
				Seed:     seed(7),
			})
			require.NoError(t, err)
			assert.Equal(t, StatusAccepted, outcome.Status, outcome.Summary())
			assert.Equal(t, name, outcome.Strategy)
			assertValidRoster(t, outcome, model.DefaultQuota())
		})
	}
}

func TestGenerate_RosterOrderedByRoleThenCost(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{Players: testPool(), Budget: 500, Seed: seed(2)})
	require.NoError(t, err)

	picks := outcome.Roster.Picks
	for i := 1; i < len(picks); i++ {
		prev, cur := roleIndex(picks[i-1].Role), roleIndex(picks[i].Role)
		require.LessOrEqual(t, prev, cur)
		if prev == cur {
			assert.GreaterOrEqual(t, picks[i-1].Cost(), picks[i].Cost())
		}
	}
}

func TestGenerate_SeededRunsAreReproducible(t *testing.T) {
	config := GenerateConfig{Players: testPool(), Budget: 500, Strategy: "DiversifiedSquad", Seed: seed(99)}

	first, err := Generate(context.Background(), config)
	require.NoError(t, err)
	second, err := Generate(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, rosterKeys(first.Roster), rosterKeys(second.Roster))
	assert.Equal(t, first.TotalCost, second.TotalCost)
	assert.Equal(t, first.Attempts, second.Attempts)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGenerate_DoesNotMutateCatalog(t *testing.T) {
	players := testPool()
	before := testPool()

	_, err := Generate(context.Background(), GenerateConfig{Players: players, Budget: 1000, Seed: seed(4)})
	require.NoError(t, err)

	assert.Equal(t, before, players)
}

func TestGenerate_DoubledBudget(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{Players: testPool(), Budget: 1000, Seed: seed(5)})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, outcome.Status)
	assert.GreaterOrEqual(t, outcome.TotalCost, 950.0)
	assert.LessOrEqual(t, outcome.TotalCost, 1000.0)
}

func TestGenerate_PercentageMode(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{
		Players: testPool(),
		Mode:    ModePercentage,
		Budget:  100,
		Seed:    seed(6),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, outcome.Status)
	assert.InDelta(t, 97.5, outcome.TotalCost, 2.5)
	assertValidRoster(t, outcome, model.DefaultQuota())
}

func TestGenerate_NarrowBandTrimsOverspend(t *testing.T) {
	band := Band{MinPct: 80, MaxPct: 90}
	outcome, err := Generate(context.Background(), GenerateConfig{
		Players: testPool(),
		Budget:  500,
		Band:    band,
		Seed:    seed(8),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, outcome.Status)
	assert.GreaterOrEqual(t, outcome.TotalCost, 400.0)
	assert.LessOrEqual(t, outcome.TotalCost, 450.0)
}

func TestGenerate_BudgetOfOneFails(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{
		Players:     testPool(),
		Budget:      1,
		MaxAttempts: 5,
		Seed:        seed(1),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Nil(t, outcome.Roster)
	assert.Equal(t, 5, outcome.Attempts)
	assert.ErrorIs(t, outcome.Reason, ErrInsufficientCandidates)
	assert.NotEmpty(t, outcome.Warnings)
}

func TestGenerate_TwoOfThreeGoalkeepers(t *testing.T) {
	var players []model.Player
	for _, p := range testPool() {
		if p.PrimaryRole() == model.RoleGoalkeeper && p.ID != "P-0" && p.ID != "P-1" {
			continue
		}
		players = append(players, p)
	}

	outcome, err := Generate(context.Background(), GenerateConfig{Players: players, Budget: 500, MaxAttempts: 3, Seed: seed(1)})
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, outcome.Status)

	var shortfall *InsufficientCandidatesError
	require.True(t, errors.As(outcome.Reason, &shortfall))
	assert.Equal(t, model.RoleGoalkeeper, shortfall.Role)
	assert.Equal(t, 3, shortfall.Need)
	assert.Equal(t, 2, shortfall.Available)
}

func TestGenerate_BestEffortWhenBandUnreachable(t *testing.T) {
	players := []model.Player{
		player("gk1", model.RoleGoalkeeper, 10), player("gk2", model.RoleGoalkeeper, 10),
		player("d1", model.RoleDefender, 10), player("d2", model.RoleDefender, 10),
		player("m1", model.RoleMidfielder, 10), player("m2", model.RoleMidfielder, 10),
		player("f1", model.RoleForward, 10), player("f2", model.RoleForward, 10),
	}

	outcome, err := Generate(context.Background(), GenerateConfig{
		Players:     players,
		Budget:      500,
		Quota:       smallQuota(),
		MaxAttempts: 4,
		Seed:        seed(1),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusBestEffort, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, ErrBudgetUnreachable)
	assert.Equal(t, 4, outcome.Attempts)
	assert.Equal(t, 40.0, outcome.TotalCost)
	assertValidRoster(t, outcome, smallQuota())

	names := make([]string, 0, len(outcome.ValidationErrors))
	for _, e := range outcome.ValidationErrors {
		names = append(names, e.CriterionName)
	}
	assert.Contains(t, names, "BudgetBand")
}

func TestGenerate_DegenerateCatalogFails(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{Players: nil, Budget: 500})
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, ErrEmptyOrDegenerateCatalog)
	assert.Equal(t, 0, outcome.Attempts)
}

func TestGenerate_InvalidRequests(t *testing.T) {
	cases := map[string]GenerateConfig{
		"zero budget":        {Players: testPool(), Budget: 0},
		"negative budget":    {Players: testPool(), Budget: -10},
		"percentage too big": {Players: testPool(), Budget: 150, Mode: ModePercentage},
		"too many attempts":  {Players: testPool(), Budget: 500, MaxAttempts: MaxAttemptsLimit + 1},
		"negative attempts":  {Players: testPool(), Budget: 500, MaxAttempts: -1},
		"inverted band":      {Players: testPool(), Budget: 500, Band: Band{MinPct: 100, MaxPct: 90}},
		"bad quota":          {Players: testPool(), Budget: 500, Quota: model.RoleQuota{model.RoleForward: 6}},
		"bad multi-role":     {Players: testPool(), Budget: 500, MultiRoleMode: "all"},
	}

	for name, config := range cases {
		outcome, err := Generate(context.Background(), config)
		assert.ErrorIs(t, err, ErrInvalidRequest, name)
		assert.Nil(t, outcome, name)
	}
}

func TestGenerate_UnknownStrategy(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{Players: testPool(), Budget: 500, Strategy: "AllIn"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Nil(t, outcome)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := Generate(ctx, GenerateConfig{Players: testPool(), Budget: 500})
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, context.Canceled)
	assert.Equal(t, 0, outcome.Attempts)
}

func TestGenerate_MultiRolePlayersFillOneSlot(t *testing.T) {
	players := testPool()
	for i := range players {
		if players[i].PrimaryRole() == model.RoleDefender {
			players[i].Roles = []model.Role{model.RoleDefender, model.RoleMidfielder}
		}
	}

	outcome, err := Generate(context.Background(), GenerateConfig{
		Players:       players,
		Budget:        500,
		MultiRoleMode: MultiRoleAny,
		Seed:          seed(11),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, outcome.Status)
	assertValidRoster(t, outcome, model.DefaultQuota())
}

func TestGenerate_ClubLimitCriterion(t *testing.T) {
	outcome, err := Generate(context.Background(), GenerateConfig{
		Players:  testPool(),
		Budget:   500,
		Seed:     seed(12),
		Criteria: []Criterion{NewClubLimitCriterion(3)},
	})
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, outcome.Status)

	clubs := make(map[string]int)
	for _, pick := range outcome.Roster.Picks {
		clubs[pick.Player.Club]++
	}
	for club, count := range clubs {
		assert.LessOrEqual(t, count, 3, club)
	}
}

func TestReconcile_TrimsAndRefillsOverspend(t *testing.T) {
	players := []model.Player{
		player("a", model.RoleGoalkeeper, 60), player("b", model.RoleGoalkeeper, 5),
		player("c", model.RoleDefender, 30), player("d", model.RoleDefender, 10),
		player("e", model.RoleMidfielder, 10), player("f", model.RoleMidfielder, 20),
		player("g", model.RoleForward, 10), player("h", model.RoleForward, 25),
	}

	g, err := InitGeneration(GenerateConfig{Players: players, Budget: 100, Baseline: 100, Quota: smallQuota(), Seed: seed(1)})
	require.NoError(t, err)

	a := &attempt{roster: &Roster{}, ranked: make(map[model.Role][]Candidate)}
	for _, role := range model.AllRoles {
		a.ranked[role] = RankCandidates(RolePool(players, role, MultiRoleFirstMatch), role, g.strategy, g.rng)
	}
	for _, id := range []string{"a", "c", "e", "g"} {
		for _, role := range model.AllRoles {
			for _, c := range a.ranked[role] {
				if c.Player.ID == id {
					a.roster.Picks = append(a.roster.Picks, c)
				}
			}
		}
	}
	require.Equal(t, 110.0, a.roster.TotalCost())

	require.NoError(t, g.reconcile(a))

	assert.True(t, a.roster.IsComplete(smallQuota()))
	assert.LessOrEqual(t, a.roster.TotalCost(), 100.0)
	assert.False(t, a.roster.Contains("a"))
	assert.True(t, a.roster.Contains("b"))
}

func TestReconcile_UpgradesUnderspend(t *testing.T) {
	players := []model.Player{
		player("gk1", model.RoleGoalkeeper, 5), player("gk2", model.RoleGoalkeeper, 15),
		player("d1", model.RoleDefender, 5), player("d2", model.RoleDefender, 25),
		player("m1", model.RoleMidfielder, 5), player("m2", model.RoleMidfielder, 30),
		player("f1", model.RoleForward, 5), player("f2", model.RoleForward, 40),
	}

	g, err := InitGeneration(GenerateConfig{Players: players, Budget: 100, Baseline: 100, Quota: smallQuota(), Seed: seed(1)})
	require.NoError(t, err)

	a := &attempt{roster: &Roster{}, ranked: make(map[model.Role][]Candidate)}
	for _, role := range model.AllRoles {
		ranked := RankCandidates(RolePool(players, role, MultiRoleFirstMatch), role, g.strategy, g.rng)
		a.ranked[role] = ranked
		for _, c := range ranked {
			if c.Cost() == 5 {
				a.roster.Picks = append(a.roster.Picks, c)
			}
		}
	}
	require.Equal(t, 20.0, a.roster.TotalCost())

	require.NoError(t, g.reconcile(a))

	// upgrading every slot would cost 110, so the goalkeeper keeps the cheap pick
	assert.True(t, a.roster.IsComplete(smallQuota()))
	assert.True(t, a.roster.Contains("gk1"))
	assert.GreaterOrEqual(t, a.roster.TotalCost(), 95.0)
	assert.LessOrEqual(t, a.roster.TotalCost(), 100.0)
}
