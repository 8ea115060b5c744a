package prediction

import (
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/stats"
)

var (
	blueRoster = models.Roster{266, 103, 84, 12, 32}
	redRoster  = models.Roster{1, 22, 136, 268, 432}
)

// fixtureTable builds a snapshot where every blue pair is 5/10, every red pair
// 7/10 and every blue-vs-red matchup 5/10. Synergies are stored in one ordering only.
func fixtureTable() *stats.Table {
	entries := make(map[models.ChampionID]stats.ChampionStats)
	entry := func(id models.ChampionID) stats.ChampionStats {
		cs, ok := entries[id]
		if !ok {
			cs = stats.ChampionStats{
				Synergies: map[models.ChampionID]stats.WinStats{},
				Matchups:  map[models.ChampionID]stats.WinStats{},
			}
			entries[id] = cs
		}
		return cs
	}
	fill := func(roster models.Roster, ws stats.WinStats) {
		for i := range roster {
			cs := entry(roster[i])
			for j := i + 1; j < len(roster); j++ {
				cs.Synergies[roster[j]] = ws
			}
		}
	}
	fill(blueRoster, stats.WinStats{Wins: 5, Games: 10})
	fill(redRoster, stats.WinStats{Wins: 7, Games: 10})
	for _, b := range blueRoster {
		cs := entry(b)
		for _, r := range redRoster {
			cs.Matchups[r] = stats.WinStats{Wins: 5, Games: 10}
		}
	}
	return stats.NewTable(entries)
}

func fixtureMatch(id string) *models.Match {
	return &models.Match{
		MatchID:     id,
		Blue:        append(models.Roster{}, blueRoster...),
		Red:         append(models.Roster{}, redRoster...),
		WinningTeam: models.TeamBlue,
	}
}
