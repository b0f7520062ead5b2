package bracket

import "sort"

// ThirdPlaceRules maps a qualifying-groups key — the sorted letters of
// the groups whose third-place teams advance, e.g. "ABCD" — to the
// assignment of abstract bracket position labels to group letters. The
// mapping is tournament configuration sourced externally; this package
// treats it as an opaque lookup table.
type ThirdPlaceRules map[string]map[string]GroupLetter

// ThirdPlaceStanding pairs a group with its third-place team's record
// for cross-group comparison.
type ThirdPlaceStanding struct {
	Group GroupLetter `json:"group"`
	Stats TeamStats   `json:"stats"`
}

// RankThirdPlaceTeams orders third-place finishers across groups:
// points, goal difference, goals scored, conduct, then group letter as
// the deterministic fallback.
func RankThirdPlaceTeams(thirdsByGroup map[GroupLetter]TeamStats) []ThirdPlaceStanding {
	ranked := make([]ThirdPlaceStanding, 0, len(thirdsByGroup))
	for letter, stats := range thirdsByGroup {
		ranked = append(ranked, ThirdPlaceStanding{Group: letter, Stats: stats})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].Stats, ranked[j].Stats
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.Conduct != b.Conduct {
			return a.Conduct < b.Conduct
		}
		return ranked[i].Group < ranked[j].Group
	})
	return ranked
}

// QualifyingGroupsKey builds the rule-lookup key from the top n ranked
// third-place teams: their group letters, sorted alphabetically and
// concatenated ("ACDF").
func QualifyingGroupsKey(ranked []ThirdPlaceStanding, n int) string {
	if n > len(ranked) {
		n = len(ranked)
	}
	letters := make([]string, 0, n)
	for _, entry := range ranked[:n] {
		letters = append(letters, string(entry.Group))
	}
	sort.Strings(letters)
	key := ""
	for _, l := range letters {
		key += l
	}
	return key
}

// ResolveThirdPlaceSlots maps each abstract bracket position of the rule
// set matching key to the third-place team of the group the rule names.
// An unknown key — a combination the configuration never anticipated —
// resolves nothing: that is a data gap for the caller to log, not an
// error. Positions whose group has no resolved third-place record are
// likewise left out.
func ResolveThirdPlaceSlots(key string, thirdsByGroup map[GroupLetter]TeamStats, rules ThirdPlaceRules) map[string]TeamID {
	resolved := make(map[string]TeamID)
	mapping, ok := rules[key]
	if !ok {
		return resolved
	}
	for position, letter := range mapping {
		if stats, ok := thirdsByGroup[letter]; ok {
			resolved[position] = stats.TeamID
		}
	}
	return resolved
}
