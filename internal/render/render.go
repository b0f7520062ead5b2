// Package render formats resolutions as aligned plain-text tables for
// the CLI.
package render

import (
	"fmt"
	"strings"

	"github.com/prodeapp/engine/internal/tournament"
)

// Standings formats every group's table into grouped, aligned output.
// Unresolved groups are listed with a marker instead of a table.
func Standings(res *tournament.Resolution) string {
	var sb strings.Builder
	for i, g := range res.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Group %s\n", g.Letter))
		if !g.Resolved {
			sb.WriteString("  (unresolved: group fixtures incomplete)\n")
			continue
		}
		sb.WriteString(groupTable(g))
	}
	return sb.String()
}

func groupTable(g tournament.GroupTable) string {
	type row struct{ pos, name, pld, w, d, l, gf, ga, gd, pts string }
	rows := make([]row, 0, len(g.Table))
	for _, t := range g.Table {
		rows = append(rows, row{
			pos:  fmt.Sprintf("%d.", t.Position),
			name: t.Name,
			pld:  fmt.Sprintf("%d", t.Played),
			w:    fmt.Sprintf("%d", t.Wins),
			d:    fmt.Sprintf("%d", t.Draws),
			l:    fmt.Sprintf("%d", t.Losses),
			gf:   fmt.Sprintf("%d", t.GoalsFor),
			ga:   fmt.Sprintf("%d", t.GoalsAgainst),
			gd:   fmt.Sprintf("%+d", t.GoalDifference),
			pts:  fmt.Sprintf("%d", t.Points),
		})
	}

	// Compute column widths
	maxPos, maxName := len("#"), len("Team")
	for _, r := range rows {
		if l := len(r.pos); l > maxPos {
			maxPos = l
		}
		if l := len(r.name); l > maxName {
			maxName = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %3s %3s %3s %3s %4s %4s %4s %4s\n",
		maxPos, "#", maxName, "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %3s %3s %3s %3s %4s %4s %4s %4s\n",
			maxPos, r.pos, maxName, r.name, r.pld, r.w, r.d, r.l, r.gf, r.ga, r.gd, r.pts))
	}
	return sb.String()
}

// Bracket formats playoff rounds with slot occupants, writing "pending"
// for slots the resolver could not determine.
func Bracket(res *tournament.Resolution) string {
	var sb strings.Builder
	for i, round := range res.Rounds {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(round.Name + "\n")

		type row struct{ id, home, away string }
		rows := make([]row, 0, len(round.Games))
		for _, g := range round.Games {
			rows = append(rows, row{
				id:   string(g.GameID),
				home: slotName(g.Home),
				away: slotName(g.Away),
			})
		}

		maxID, maxHome := len("Game"), 0
		for _, r := range rows {
			if l := len(r.id); l > maxID {
				maxID = l
			}
			if l := len(r.home); l > maxHome {
				maxHome = l
			}
		}
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("  %-*s  %-*s vs %s\n",
				maxID, r.id, maxHome, r.home, r.away))
		}
	}
	return sb.String()
}

func slotName(ref *tournament.TeamRef) string {
	if ref == nil {
		return "pending"
	}
	return ref.Name
}
