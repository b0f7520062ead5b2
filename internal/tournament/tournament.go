// Package tournament carries tournament definitions — teams, groups,
// playoff rounds, third-place rules, and officially recorded results —
// and resolves them into standings tables and bracket views through the
// bracket package. Definitions are plain JSON documents supplied by the
// caller; nothing is persisted here.
package tournament

import (
	"errors"
	"fmt"

	"github.com/prodeapp/engine/internal/bracket"
)

var (
	ErrMissingID       = errors.New("tournament id is required")
	ErrMissingName     = errors.New("tournament name is required")
	ErrDuplicateGroup  = errors.New("duplicate group letter")
	ErrDuplicateGame   = errors.New("duplicate game id")
	ErrUnknownTeam     = errors.New("fixture references unknown team")
	ErrUnknownGroup    = errors.New("slot rule references unknown group")
	ErrUnknownGame     = errors.New("slot rule references unknown game")
	ErrAmbiguousRule   = errors.New("slot rule must name exactly one source")
	ErrInvalidPosition = errors.New("slot rule position must be positive")
)

// Team is a team entry in the tournament's registry, mapping the opaque
// ID used everywhere else to a display name.
type Team struct {
	ID   bracket.TeamID `json:"id"`
	Name string         `json:"name"`
}

// Fixture is one scheduled group-stage game.
type Fixture struct {
	GameID     bracket.GameID `json:"game_id"`
	HomeTeamID bracket.TeamID `json:"home_team_id"`
	AwayTeamID bracket.TeamID `json:"away_team_id"`
}

// GroupDef is a group's definition: teams in listing (seeding) order and
// the full fixture list.
type GroupDef struct {
	Letter     bracket.GroupLetter    `json:"letter"`
	TeamIDs    []bracket.TeamID       `json:"team_ids"`
	Fixtures   []Fixture              `json:"fixtures"`
	HeadToHead bool                   `json:"head_to_head"`
	Conduct    map[bracket.TeamID]int `json:"conduct,omitempty"`
}

// Round is one playoff round in bracket order.
type Round struct {
	Name  string                `json:"name"`
	Games []bracket.PlayoffGame `json:"games"`
}

// Definition is a complete tournament document.
type Definition struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Teams           []Team                  `json:"teams"`
	Groups          []GroupDef              `json:"groups"`
	Rounds          []Round                 `json:"rounds"`
	ThirdPlaceRules bracket.ThirdPlaceRules `json:"third_place_rules,omitempty"`

	// Results holds the officially recorded outcomes, keyed into maps on
	// demand. Guesses never live in the definition; they arrive per
	// request.
	Results []bracket.GameOutcome `json:"results,omitempty"`
}

// TeamName resolves a team ID to its display name, falling back to the
// raw ID for teams missing from the registry.
func (d *Definition) TeamName(id bracket.TeamID) string {
	for _, t := range d.Teams {
		if t.ID == id {
			return t.Name
		}
	}
	return string(id)
}

// GroupLetters returns every group letter in definition order.
func (d *Definition) GroupLetters() []bracket.GroupLetter {
	letters := make([]bracket.GroupLetter, len(d.Groups))
	for i, g := range d.Groups {
		letters[i] = g.Letter
	}
	return letters
}

// ResultsByGame indexes the official results by game ID.
func (d *Definition) ResultsByGame() map[bracket.GameID]bracket.GameOutcome {
	m := make(map[bracket.GameID]bracket.GameOutcome, len(d.Results))
	for _, o := range d.Results {
		m[o.GameID] = o
	}
	return m
}

// bracketGroup converts the definition's group into the resolver input.
func (g GroupDef) bracketGroup() bracket.Group {
	ids := make([]bracket.GameID, len(g.Fixtures))
	for i, f := range g.Fixtures {
		ids[i] = f.GameID
	}
	return bracket.Group{
		Letter:     g.Letter,
		TeamIDs:    g.TeamIDs,
		GameIDs:    ids,
		HeadToHead: g.HeadToHead,
		Conduct:    g.Conduct,
	}
}

// Validate checks the definition's referential integrity: group letters
// and game IDs are unique, fixtures stay inside their group, and every
// slot rule points at a group or game the tournament actually defines.
// The resolver itself tolerates dangling references (they resolve to
// nothing); validation exists so misconfigured documents fail loudly at
// load time instead.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return ErrMissingID
	}
	if d.Name == "" {
		return ErrMissingName
	}

	teams := make(map[bracket.TeamID]bool, len(d.Teams))
	for _, t := range d.Teams {
		teams[t.ID] = true
	}

	letters := make(map[bracket.GroupLetter]bool, len(d.Groups))
	games := make(map[bracket.GameID]bool)

	for _, g := range d.Groups {
		if letters[g.Letter] {
			return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Letter)
		}
		letters[g.Letter] = true

		inGroup := make(map[bracket.TeamID]bool, len(g.TeamIDs))
		for _, id := range g.TeamIDs {
			if !teams[id] {
				return fmt.Errorf("%w: %q in group %q", ErrUnknownTeam, id, g.Letter)
			}
			inGroup[id] = true
		}
		for _, f := range g.Fixtures {
			if games[f.GameID] {
				return fmt.Errorf("%w: %q", ErrDuplicateGame, f.GameID)
			}
			games[f.GameID] = true
			if !inGroup[f.HomeTeamID] || !inGroup[f.AwayTeamID] {
				return fmt.Errorf("%w: game %q in group %q", ErrUnknownTeam, f.GameID, g.Letter)
			}
		}
	}

	for _, round := range d.Rounds {
		for _, game := range round.Games {
			if games[game.GameID] {
				return fmt.Errorf("%w: %q", ErrDuplicateGame, game.GameID)
			}
			games[game.GameID] = true

			for _, rule := range []bracket.SlotRule{game.Home, game.Away} {
				if err := validateRule(rule, letters, games); err != nil {
					return fmt.Errorf("game %q: %w", game.GameID, err)
				}
			}
		}
	}
	return nil
}

func validateRule(rule bracket.SlotRule, letters map[bracket.GroupLetter]bool, games map[bracket.GameID]bool) error {
	sources := 0
	if rule.Group != "" {
		sources++
	}
	if rule.SourceGame != "" {
		sources++
	}
	if rule.ThirdPlace != "" {
		sources++
	}
	if sources != 1 {
		return ErrAmbiguousRule
	}

	switch {
	case rule.Group != "":
		if !letters[rule.Group] {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, rule.Group)
		}
		if rule.Position < 1 {
			return ErrInvalidPosition
		}
	case rule.SourceGame != "":
		// Rounds are listed in bracket order, so a source game must
		// already be defined by the time a rule references it.
		if !games[rule.SourceGame] {
			return fmt.Errorf("%w: %q", ErrUnknownGame, rule.SourceGame)
		}
	}
	return nil
}
