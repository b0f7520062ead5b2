package bracket

// SlotRule describes how one playoff-game slot is filled. Exactly one of
// the three sources is set:
//
//   - Group + Position: the team ranked at Position (1-indexed) in the
//     group's final standings.
//   - SourceGame + WantsWinner: the winner (or loser) of a previous
//     playoff game.
//   - ThirdPlace: an abstract bracket position label ("Position1", ...)
//     filled by a third-place qualifier when the tournament restricts
//     which groups' third-place teams advance.
type SlotRule struct {
	Group    GroupLetter `json:"group,omitempty"`
	Position int         `json:"position,omitempty"`

	SourceGame  GameID `json:"source_game,omitempty"`
	WantsWinner bool   `json:"wants_winner,omitempty"`

	ThirdPlace string `json:"third_place,omitempty"`
}

// PlayoffGame is one knockout fixture and the rules filling its slots.
type PlayoffGame struct {
	GameID GameID   `json:"game_id"`
	Home   SlotRule `json:"home"`
	Away   SlotRule `json:"away"`
}

// SlotAssignment is the resolved occupancy of one playoff game. A nil
// team means "not yet determined" — never an error.
type SlotAssignment struct {
	GameID   GameID  `json:"game_id"`
	HomeTeam *TeamID `json:"home_team,omitempty"`
	AwayTeam *TeamID `json:"away_team,omitempty"`
}

// SlotResolver resolves playoff slots against computed group standings
// and the outcomes of already-played (or guessed) fixtures.
type SlotResolver struct {
	// Standings holds the final table of each resolved group. Groups
	// whose standings are unresolved are simply absent.
	Standings map[GroupLetter][]TeamStats

	// Groups lists every group of the tournament, in bracket order. The
	// third-place qualifier key can only be derived once all of them are
	// resolved.
	Groups []GroupLetter

	// Outcomes maps fixtures to their result or guess. Playoff games
	// referenced as a slot source are looked up here.
	Outcomes map[GameID]GameOutcome

	// ThirdPlaceRules is the externally configured mapping used when
	// slot rules carry abstract third-place labels. Nil when every
	// third-place team advances through fixed per-group slots.
	ThirdPlaceRules ThirdPlaceRules
}

// Resolve assigns teams to every playoff game's slots. Each game always
// appears in the output; a slot stays nil whenever its source — a group
// still being played, an undecided tie, a missing rule mapping, a
// misconfigured reference — cannot name a team yet.
//
// Chained rounds need no multi-pass logic: a semifinal slot referencing
// a quarterfinal resolves through Outcomes, which already reflects every
// earlier fixture the caller knows about.
func (r *SlotResolver) Resolve(games []PlayoffGame) map[GameID]SlotAssignment {
	thirds := r.resolveThirdPlace(games)

	assignments := make(map[GameID]SlotAssignment, len(games))
	for _, g := range games {
		assignments[g.GameID] = SlotAssignment{
			GameID:   g.GameID,
			HomeTeam: r.resolveRule(g.Home, thirds),
			AwayTeam: r.resolveRule(g.Away, thirds),
		}
	}
	return assignments
}

func (r *SlotResolver) resolveRule(rule SlotRule, thirds map[string]TeamID) *TeamID {
	switch {
	case rule.ThirdPlace != "":
		if team, ok := thirds[rule.ThirdPlace]; ok {
			return &team
		}
		return nil

	case rule.Group != "":
		table, ok := r.Standings[rule.Group]
		if !ok {
			return nil
		}
		if rule.Position < 1 || rule.Position > len(table) {
			return nil
		}
		team := table[rule.Position-1].TeamID
		return &team

	case rule.SourceGame != "":
		outcome, ok := r.Outcomes[rule.SourceGame]
		if !ok {
			return nil
		}
		var team TeamID
		if rule.WantsWinner {
			team, ok = outcome.Winner()
		} else {
			team, ok = outcome.Loser()
		}
		if !ok {
			return nil
		}
		return &team
	}
	return nil
}

// resolveThirdPlace derives the qualifying-groups key from the resolved
// standings and maps each abstract label used by the given games to a
// concrete team. Returns an empty map — all labels unresolved — until
// every group is resolved, and when no rule mapping matches the key.
func (r *SlotResolver) resolveThirdPlace(games []PlayoffGame) map[string]TeamID {
	labels := 0
	seen := map[string]bool{}
	for _, g := range games {
		for _, rule := range []SlotRule{g.Home, g.Away} {
			if rule.ThirdPlace != "" && !seen[rule.ThirdPlace] {
				seen[rule.ThirdPlace] = true
				labels++
			}
		}
	}
	if labels == 0 || r.ThirdPlaceRules == nil {
		return nil
	}

	thirdsByGroup := make(map[GroupLetter]TeamStats, len(r.Groups))
	for _, letter := range r.Groups {
		table, ok := r.Standings[letter]
		if !ok || len(table) < 3 {
			// Any unresolved group leaves the qualifier set unknowable.
			return nil
		}
		thirdsByGroup[letter] = table[2]
	}

	ranked := RankThirdPlaceTeams(thirdsByGroup)
	key := QualifyingGroupsKey(ranked, labels)

	return ResolveThirdPlaceSlots(key, thirdsByGroup, r.ThirdPlaceRules)
}
