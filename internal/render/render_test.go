package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prodeapp/engine/internal/bracket"
	"github.com/prodeapp/engine/internal/tournament"
)

func TestStandings(t *testing.T) {
	res := &tournament.Resolution{
		TournamentID: "mini",
		Groups: []tournament.GroupTable{
			{
				Letter:   "A",
				Resolved: true,
				Table: []tournament.TeamRow{
					{
						Position: 1,
						Name:     "Argentina",
						TeamStats: bracket.TeamStats{
							TeamID: "ARG", Played: 1, Wins: 1,
							Points: 3, GoalsFor: 2, GoalsAgainst: 1, GoalDifference: 1,
						},
					},
					{
						Position: 2,
						Name:     "Brazil",
						TeamStats: bracket.TeamStats{
							TeamID: "BRA", Played: 1, Losses: 1,
							GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1,
						},
					},
				},
			},
			{Letter: "B"},
		},
	}

	out := Standings(res)
	assert.Contains(t, out, "Group A")
	assert.Contains(t, out, "1.  Argentina")
	assert.Contains(t, out, "2.  Brazil")
	assert.Contains(t, out, "Pts")
	assert.Contains(t, out, "+1")
	assert.Contains(t, out, "Group B")
	assert.Contains(t, out, "unresolved")
}

func TestBracket(t *testing.T) {
	arg := bracket.TeamID("ARG")
	res := &tournament.Resolution{
		TournamentID: "mini",
		Rounds: []tournament.RoundView{{
			Name: "Final",
			Games: []tournament.GameView{{
				GameID: "f1",
				Home:   &tournament.TeamRef{ID: arg, Name: "Argentina"},
				Away:   nil,
			}},
		}},
	}

	out := Bracket(res)
	assert.Contains(t, out, "Final")
	assert.Contains(t, out, "f1")
	assert.Contains(t, out, "Argentina vs pending")
}
