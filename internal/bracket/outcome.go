package bracket

// GameOutcome is one fixture's outcome — an official result or a user
// guess, both share this shape. Scores are pointers so an unplayed or
// partially entered fixture is distinguishable from 0-0.
type GameOutcome struct {
	GameID     GameID `json:"game_id"`
	HomeTeamID TeamID `json:"home_team_id"`
	AwayTeamID TeamID `json:"away_team_id"`

	HomeScore *int `json:"home_score,omitempty"`
	AwayScore *int `json:"away_score,omitempty"`

	// Penalty-winner flags decide knockout ties when scores are level.
	HomePenaltyWinner bool `json:"home_penalty_winner,omitempty"`
	AwayPenaltyWinner bool `json:"away_penalty_winner,omitempty"`
}

// Decided reports whether both scores are recorded.
func (o GameOutcome) Decided() bool {
	return o.HomeScore != nil && o.AwayScore != nil
}

// Draw reports whether the outcome is decided and level on score.
func (o GameOutcome) Draw() bool {
	return o.Decided() && *o.HomeScore == *o.AwayScore
}

// Winner returns the winning team. For level scores the penalty-winner
// flag decides; with no flag (or contradictory flags) there is no winner
// and ok is false. Undecided outcomes never have a winner.
func (o GameOutcome) Winner() (TeamID, bool) {
	if !o.Decided() {
		return "", false
	}
	switch {
	case *o.HomeScore > *o.AwayScore:
		return o.HomeTeamID, true
	case *o.AwayScore > *o.HomeScore:
		return o.AwayTeamID, true
	case o.HomePenaltyWinner && !o.AwayPenaltyWinner:
		return o.HomeTeamID, true
	case o.AwayPenaltyWinner && !o.HomePenaltyWinner:
		return o.AwayTeamID, true
	}
	return "", false
}

// Loser returns the losing team, subject to the same rules as Winner.
func (o GameOutcome) Loser() (TeamID, bool) {
	winner, ok := o.Winner()
	if !ok {
		return "", false
	}
	if winner == o.HomeTeamID {
		return o.AwayTeamID, true
	}
	return o.HomeTeamID, true
}

// SelectGroupOutcomes applies the all-or-nothing policy for mixing
// official results with guesses inside one group: as soon as any of the
// group's fixtures has an official result, only results are consulted
// for the whole group. Guesses fill in only when the group has no
// results at all. A standings table must never silently blend official
// and speculative data.
//
// The returned map contains only the group's own fixtures.
func SelectGroupOutcomes(group Group, results, guesses map[GameID]GameOutcome) map[GameID]GameOutcome {
	hasResult := false
	for _, gid := range group.GameIDs {
		if _, ok := results[gid]; ok {
			hasResult = true
			break
		}
	}

	source := guesses
	if hasResult {
		source = results
	}

	selected := make(map[GameID]GameOutcome, len(group.GameIDs))
	for _, gid := range group.GameIDs {
		if o, ok := source[gid]; ok {
			selected[gid] = o
		}
	}
	return selected
}
