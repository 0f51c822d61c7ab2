package catalog

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// optional is a parsed numeric cell that may be missing
type optional struct {
	value float64
	ok    bool
}

type rawPlayer struct {
	name        string
	club        string
	roles       []model.Role
	rating      optional
	fantasy     optional
	cost        optional
	appearances optional
}

// impute fills missing values and clamps negatives:
//   - cost falls back to the population mean
//   - fantasy average falls back to the season rating, then the population mean
//   - season rating falls back to the fantasy average, then the population mean
//   - appearances fall back to 0
func impute(raws []rawPlayer, imputed map[Column]int) []model.Player {
	meanCost := presentMean(raws, func(r rawPlayer) optional { return r.cost })
	meanFantasy := presentMean(raws, func(r rawPlayer) optional { return r.fantasy })
	meanRating := presentMean(raws, func(r rawPlayer) optional { return r.rating })

	players := make([]model.Player, 0, len(raws))
	for _, r := range raws {
		p := model.Player{
			Name:  r.name,
			Club:  r.club,
			Roles: r.roles,
		}

		if r.cost.ok {
			p.Cost = r.cost.value
		} else {
			p.Cost = meanCost
			imputed[ColumnCost]++
		}

		switch {
		case r.fantasy.ok:
			p.FantasyAverage = r.fantasy.value
		case r.rating.ok:
			p.FantasyAverage = r.rating.value
			imputed[ColumnFantasyAverage]++
		default:
			p.FantasyAverage = meanFantasy
			imputed[ColumnFantasyAverage]++
		}

		switch {
		case r.rating.ok:
			p.SeasonAverageRating = r.rating.value
		case r.fantasy.ok:
			p.SeasonAverageRating = r.fantasy.value
			imputed[ColumnRating]++
		default:
			p.SeasonAverageRating = meanRating
			imputed[ColumnRating]++
		}

		if r.appearances.ok {
			p.Appearances = int(math.Round(r.appearances.value))
		} else {
			imputed[ColumnAppearances]++
		}

		p.Cost = math.Max(p.Cost, 0)
		p.FantasyAverage = math.Max(p.FantasyAverage, 0)
		p.SeasonAverageRating = math.Max(p.SeasonAverageRating, 0)
		p.Appearances = max(p.Appearances, 0)

		players = append(players, p)
	}

	return players
}

// presentMean returns the mean of the values present, or 0 if none are
func presentMean(raws []rawPlayer, get func(rawPlayer) optional) float64 {
	values := make([]float64, 0, len(raws))
	for _, r := range raws {
		if v := get(r); v.ok {
			values = append(values, v.value)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
