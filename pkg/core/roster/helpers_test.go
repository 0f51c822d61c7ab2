package roster

import (
	"fmt"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

var testClubs = []string{
	"Atalanta", "Bologna", "Cagliari", "Como", "Empoli", "Fiorentina", "Genoa", "Inter", "Juventus", "Lazio",
	"Lecce", "Milan", "Monza", "Napoli", "Parma", "Roma", "Torino", "Udinese", "Venezia", "Verona",
}

// testPool builds a deterministic catalog of 50 goalkeepers, 80 defenders,
// 80 midfielders and 60 forwards priced on the 500-credit baseline
func testPool() []model.Player {
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

func seed(v uint64) *uint64 {
	return &v
}

func player(id string, role model.Role, cost float64) model.Player {
	return model.Player{
		ID:                  id,
		Name:                id,
		Club:                "Club " + id,
		Roles:               []model.Role{role},
		SeasonAverageRating: 6,
		FantasyAverage:      6,
		Appearances:         20,
		Cost:                cost,
	}
}

func candidate(id string, role model.Role, cost, score float64) Candidate {
	return Candidate{Player: player(id, role, cost), Role: role, Score: score}
}

func rosterKeys(r *Roster) []string {
	keys := make([]string, len(r.Picks))
	for i, pick := range r.Picks {
		keys[i] = pick.Player.Key()
	}
	return keys
}
