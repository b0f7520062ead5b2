package tournament

import (
	"fmt"

	"github.com/prodeapp/engine/internal/bracket"
)

// TeamRef is a resolved slot occupant with its display name attached.
type TeamRef struct {
	ID   bracket.TeamID `json:"id"`
	Name string         `json:"name"`
}

// TeamRow is one line of a standings table.
type TeamRow struct {
	bracket.TeamStats
	Position int    `json:"position"`
	Name     string `json:"name"`
}

// GroupTable is one group's standings, or an explicit unresolved marker
// when the group's fixtures are not fully decided.
type GroupTable struct {
	Letter   bracket.GroupLetter `json:"letter"`
	Resolved bool                `json:"resolved"`
	Table    []TeamRow           `json:"table,omitempty"`
}

// GameView is one playoff game with whatever slots are determined so
// far. A nil side renders as "pending".
type GameView struct {
	GameID bracket.GameID `json:"game_id"`
	Home   *TeamRef       `json:"home,omitempty"`
	Away   *TeamRef       `json:"away,omitempty"`
}

// RoundView is one playoff round's resolved games.
type RoundView struct {
	Name  string     `json:"name"`
	Games []GameView `json:"games"`
}

// Resolution is the full computed state of a tournament for one set of
// outcomes: every group's table (or unresolved marker) and every playoff
// game's slot assignment.
type Resolution struct {
	TournamentID string       `json:"tournament_id"`
	Groups       []GroupTable `json:"groups"`
	Rounds       []RoundView  `json:"rounds"`
}

// Summary returns a one-line account of the resolution.
func (r *Resolution) Summary() string {
	resolved := 0
	for _, g := range r.Groups {
		if g.Resolved {
			resolved++
		}
	}
	games, assigned := 0, 0
	for _, round := range r.Rounds {
		for _, g := range round.Games {
			games++
			if g.Home != nil && g.Away != nil {
				assigned++
			}
		}
	}
	return fmt.Sprintf("groups=%d resolved=%d playoff_games=%d fully_assigned=%d",
		len(r.Groups), resolved, games, assigned)
}

// Resolve computes standings and playoff assignments for the definition.
// Guesses are a user's speculative outcomes: per group they are only
// consulted when the group has no official results at all (all-or-
// nothing, see bracket.SelectGroupOutcomes); for playoff games the
// official result wins per game, since knockout fixtures have no
// cross-game consistency requirement.
//
// Resolve is pure computation over the inputs — safe to call
// concurrently for different requests.
func Resolve(def *Definition, guesses []bracket.GameOutcome) *Resolution {
	results := def.ResultsByGame()
	guessed := make(map[bracket.GameID]bracket.GameOutcome, len(guesses))
	for _, o := range guesses {
		guessed[o.GameID] = o
	}

	standings := make(map[bracket.GroupLetter][]bracket.TeamStats, len(def.Groups))
	groups := make([]GroupTable, 0, len(def.Groups))
	for _, g := range def.Groups {
		bg := g.bracketGroup()
		outcomes := bracket.SelectGroupOutcomes(bg, results, guessed)
		table, ok := bracket.ResolveGroupStandings(bg, outcomes)
		if !ok {
			groups = append(groups, GroupTable{Letter: g.Letter})
			continue
		}
		standings[g.Letter] = table
		groups = append(groups, GroupTable{
			Letter:   g.Letter,
			Resolved: true,
			Table:    tableRows(def, table),
		})
	}

	resolver := &bracket.SlotResolver{
		Standings:       standings,
		Groups:          def.GroupLetters(),
		Outcomes:        playoffOutcomes(def, results, guessed),
		ThirdPlaceRules: def.ThirdPlaceRules,
	}

	var games []bracket.PlayoffGame
	for _, round := range def.Rounds {
		games = append(games, round.Games...)
	}
	assignments := resolver.Resolve(games)

	rounds := make([]RoundView, 0, len(def.Rounds))
	for _, round := range def.Rounds {
		view := RoundView{Name: round.Name, Games: make([]GameView, 0, len(round.Games))}
		for _, game := range round.Games {
			a := assignments[game.GameID]
			view.Games = append(view.Games, GameView{
				GameID: game.GameID,
				Home:   teamRef(def, a.HomeTeam),
				Away:   teamRef(def, a.AwayTeam),
			})
		}
		rounds = append(rounds, view)
	}

	return &Resolution{TournamentID: def.ID, Groups: groups, Rounds: rounds}
}

func tableRows(def *Definition, table []bracket.TeamStats) []TeamRow {
	rows := make([]TeamRow, len(table))
	for i, stats := range table {
		rows[i] = TeamRow{
			TeamStats: stats,
			Position:  i + 1,
			Name:      def.TeamName(stats.TeamID),
		}
	}
	return rows
}

func teamRef(def *Definition, id *bracket.TeamID) *TeamRef {
	if id == nil {
		return nil
	}
	return &TeamRef{ID: *id, Name: def.TeamName(*id)}
}

// playoffOutcomes picks the outcome for each playoff game: official
// result first, guess otherwise.
func playoffOutcomes(def *Definition, results, guessed map[bracket.GameID]bracket.GameOutcome) map[bracket.GameID]bracket.GameOutcome {
	outcomes := make(map[bracket.GameID]bracket.GameOutcome)
	for _, round := range def.Rounds {
		for _, game := range round.Games {
			if o, ok := results[game.GameID]; ok {
				outcomes[game.GameID] = o
			} else if o, ok := guessed[game.GameID]; ok {
				outcomes[game.GameID] = o
			}
		}
	}
	return outcomes
}
