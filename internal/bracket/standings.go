package bracket

import "sort"

// Points awarded per game, standard league convention.
const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// ResolveGroupStandings computes the ordered standings of one group from
// the supplied outcomes. It returns ok=false — and no table — unless
// every fixture in the group's game list has a decided outcome: a group
// that is partially played has no trustworthy order, and callers must
// not receive a misleading partial one.
//
// Ordering, applied in sequence:
//
//  1. points (3-1-0), descending
//  2. goal difference, descending
//  3. goals scored, descending
//  4. head-to-head result, only when group.HeadToHead is set and exactly
//     two teams remain tied after 1-3; a drawn direct match falls through
//  5. conduct score, ascending (fewer disciplinary points first)
//  6. the group's team listing order
//
// The last criterion guarantees a total order: two teams never share a
// final position.
func ResolveGroupStandings(group Group, outcomes map[GameID]GameOutcome) ([]TeamStats, bool) {
	index := make(map[TeamID]int, len(group.TeamIDs))
	table := make([]TeamStats, len(group.TeamIDs))
	for i, id := range group.TeamIDs {
		index[id] = i
		table[i] = TeamStats{TeamID: id, Conduct: group.Conduct[id]}
	}

	for _, gid := range group.GameIDs {
		o, ok := outcomes[gid]
		if !ok || !o.Decided() {
			return nil, false
		}
		hi, hok := index[o.HomeTeamID]
		ai, aok := index[o.AwayTeamID]
		if !hok || !aok {
			// Fixture references a team outside the group. Treat the
			// group as unresolvable rather than rank over bad data.
			return nil, false
		}
		applyOutcome(&table[hi], &table[ai], *o.HomeScore, *o.AwayScore)
	}

	for i := range table {
		table[i].Complete = true
	}

	sort.SliceStable(table, func(i, j int) bool {
		return lessByRecord(table[i], table[j])
	})

	if group.HeadToHead {
		applyHeadToHead(table, group, outcomes)
	}

	return table, true
}

func applyOutcome(home, away *TeamStats, homeScore, awayScore int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore
	home.GoalDifference = home.GoalsFor - home.GoalsAgainst
	away.GoalDifference = away.GoalsFor - away.GoalsAgainst

	switch {
	case homeScore > awayScore:
		home.Wins++
		away.Losses++
		home.Points += pointsPerWin
	case awayScore > homeScore:
		away.Wins++
		home.Losses++
		away.Points += pointsPerWin
	default:
		home.Draws++
		away.Draws++
		home.Points += pointsPerDraw
		away.Points += pointsPerDraw
	}
}

// lessByRecord orders by points, goal difference, goals scored, then
// conduct. The sort is stable, so teams still level fall back to the
// group's listing order. Head-to-head is applied in a second pass since
// it only holds between exactly two tied teams.
func lessByRecord(a, b TeamStats) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.Conduct < b.Conduct
}

// applyHeadToHead reorders pairs of teams tied on points, goal
// difference, and goals scored by the result of their direct match. Ties
// of three or more teams keep the conduct/listing order.
func applyHeadToHead(table []TeamStats, group Group, outcomes map[GameID]GameOutcome) {
	for start := 0; start < len(table); {
		end := start + 1
		for end < len(table) && tiedOnRecord(table[start], table[end]) {
			end++
		}
		if end-start == 2 {
			upper, lower := table[start], table[start+1]
			if winner, ok := directMatchWinner(group, outcomes, upper.TeamID, lower.TeamID); ok && winner == lower.TeamID {
				table[start], table[start+1] = lower, upper
			}
		}
		start = end
	}
}

func tiedOnRecord(a, b TeamStats) bool {
	return a.Points == b.Points &&
		a.GoalDifference == b.GoalDifference &&
		a.GoalsFor == b.GoalsFor
}

// directMatchWinner finds the decisive direct match between two teams.
// In double round-robin groups the first decisive meeting in fixture
// order decides. A drawn meeting, or no meeting at all, yields ok=false.
func directMatchWinner(group Group, outcomes map[GameID]GameOutcome, a, b TeamID) (TeamID, bool) {
	for _, gid := range group.GameIDs {
		o, ok := outcomes[gid]
		if !ok {
			continue
		}
		between := (o.HomeTeamID == a && o.AwayTeamID == b) ||
			(o.HomeTeamID == b && o.AwayTeamID == a)
		if !between {
			continue
		}
		if winner, ok := o.Winner(); ok {
			return winner, true
		}
	}
	return "", false
}
