// Package stats derives the club leaderboard from the player list and the
// finished-match event log.
package stats

import (
	"sort"

	"github.com/mauv0809/pickup-tracker/internal/club"
)

// PlayerStats is one leaderboard row.
type PlayerStats struct {
	PlayerID          string        `json:"player_id"`
	PlayerName        string        `json:"player_name"`
	Position          club.Position `json:"position"`
	Goals             int           `json:"goals"`
	Assists           int           `json:"assists"`
	MatchesPlayed     int           `json:"matches_played"`
	Saves             int           `json:"saves"`
	Clearances        int           `json:"clearances"`
	GoalContributions int           `json:"goal_contributions"`
}

// Aggregate builds the leaderboard. Counters are seeded from each player's
// baseline values, then every finished match adds one matches-played per
// participant and replays its events: a goal credits the acting player, and
// the assisting player when one is set. Event references to players missing
// from the list are skipped. Pass nil matches for a baselines-only board.
//
// The result always has one row per player and is fully deterministic for
// the same inputs: descending by goals, except that two goalkeepers compare
// by saves. The sort is stable, so equal players keep their input order.
func Aggregate(players []club.Player, matches []club.Match) []PlayerStats {
	rows := make([]PlayerStats, len(players))
	index := make(map[string]*PlayerStats, len(players))
	for i, p := range players {
		rows[i] = PlayerStats{
			PlayerID:      p.ID,
			PlayerName:    p.Name,
			Position:      p.Position,
			Goals:         p.Goals,
			Assists:       p.Assists,
			MatchesPlayed: p.MatchesPlayed,
			Saves:         p.Saves,
			Clearances:    p.Clearances,
		}
		index[p.ID] = &rows[i]
	}

	for _, m := range matches {
		if !m.Finished {
			continue
		}
		for _, id := range m.HomePlayerIDs {
			if row, ok := index[id]; ok {
				row.MatchesPlayed++
			}
		}
		for _, id := range m.AwayPlayerIDs {
			if row, ok := index[id]; ok {
				row.MatchesPlayed++
			}
		}
		for _, event := range m.Events {
			if event.Type != club.EventGoal {
				continue
			}
			if row, ok := index[event.PlayerID]; ok {
				row.Goals++
			}
			if event.AssistPlayerID == "" {
				continue
			}
			if row, ok := index[event.AssistPlayerID]; ok {
				row.Assists++
			}
		}
	}

	for i := range rows {
		rows[i].GoalContributions = rows[i].Goals + rows[i].Assists
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Position == club.PositionGoalkeeper && b.Position == club.PositionGoalkeeper {
			return a.Saves > b.Saves
		}
		return a.Goals > b.Goals
	})
	return rows
}
