// Package bracket resolves tournament brackets from group-stage results
// and knockout outcomes: group standings with configurable tie-breaks,
// playoff slot assignment (group position or prior-game winner/loser),
// and third-place qualifier selection across groups.
//
// Everything here is pure computation. Incomplete data produces explicit
// unresolved values, never errors: a group without a full set of decided
// fixtures has no standings, a playoff slot whose source is undecided has
// no team. Callers render "pending" instead of failing.
package bracket

// TeamID identifies a team. Opaque to this package.
type TeamID string

// GameID identifies a fixture. Opaque to this package.
type GameID string

// GroupLetter identifies a group-stage group ("A", "B", ...).
type GroupLetter string

// Group describes one group-stage group: its teams, its full fixture
// list, and whether the head-to-head tie-break applies.
type Group struct {
	Letter  GroupLetter `json:"letter"`
	TeamIDs []TeamID    `json:"team_ids"`
	GameIDs []GameID    `json:"game_ids"`

	// HeadToHead enables the direct-match tie-break for two teams level
	// on points, goal difference, and goals scored.
	HeadToHead bool `json:"head_to_head"`

	// Conduct carries externally supplied disciplinary points per team.
	// Lower is better. Teams without an entry count as zero.
	Conduct map[TeamID]int `json:"conduct,omitempty"`
}

// TeamStats is one team's accumulated group-stage record.
type TeamStats struct {
	TeamID TeamID `json:"team_id"`

	Played int `json:"played"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`

	Points         int `json:"points"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`

	// Conduct is the disciplinary tie-break input. Lower is better.
	Conduct int `json:"conduct"`

	// Complete is true when the team's entire fixture list has a decided
	// outcome. Standings are only ever returned with every record complete.
	Complete bool `json:"complete"`
}
