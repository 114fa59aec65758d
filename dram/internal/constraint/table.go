// Package constraint implements the timing constraint table (§4.3): a flat
// list of preceding/following command pairs, each scoped to a hierarchy
// level, that raises a following command's earliest-allowable clock
// whenever a preceding command is issued at that scope.
package constraint

import (
	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/node"
)

// Record is one row of the timing constraint table.
type Record struct {
	Level     dict.Level
	Preceding []dict.Command
	Following []dict.Command
	Latency   int
	Window    int // >1 means "the window-th most recent issuance", e.g. nFAW
	Blocked   int // exclusion-zone width; gates whether Latency applies at all
	IsSibling bool
}

// Table is the full set of constraint records for one device configuration,
// indexed by both preceding and following command for O(1) lookup at issue
// and readiness-check time.
type Table struct {
	records     []Record
	byPreceding [dict.NumCommands][]*Record
	byFollowing [dict.NumCommands][]*Record
}

// Build transcribes the LPDDR5X device model's constraint list for the
// given resolved Timings (§4.3).
func Build(t catalog.Timings) *Table {
	v := func(timing catalog.Timing) int { return t[timing] }

	records := []Record{
		// Channel: data bus occupancy and interleaved-burst spacing.
		{Level: dict.LevelChannel, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnBL32)},
		{Level: dict.LevelChannel, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnBL32)},
		{Level: dict.LevelChannel, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnBL32) * 3, Blocked: v(catalog.TnBL32) * 2},
		{Level: dict.LevelChannel, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnBL32) * 3, Blocked: v(catalog.TnBL32) * 2},
		{Level: dict.LevelChannel, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnBL32) * 4, Window: 2},
		{Level: dict.LevelChannel, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnBL32) * 4, Window: 2},

		// Rank (or a different bankgroup in the same rank).
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnCCD)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnCCD)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnCL) + v(catalog.TnBL32) + 2 - v(catalog.TnCWL)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnCWL) + v(catalog.TnBL32) + v(catalog.TnWTRS)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A, dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnBL32) + v(catalog.TnCS), IsSibling: true},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnCL) + v(catalog.TnBL32) + v(catalog.TnCS) - v(catalog.TnCWL), IsSibling: true},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdRD32), Following: cmds(dict.CmdPREA), Latency: v(catalog.TnRTP)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdWR32), Following: cmds(dict.CmdPREA), Latency: v(catalog.TnCWL) + v(catalog.TnBL32) + v(catalog.TnWR)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdACT1, dict.CmdREFpb), Latency: v(catalog.TnRRD)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnFAW), Window: 4},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdPREA), Latency: v(catalog.TnRAS)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdPREA), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnRPab)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdREFab), Latency: v(catalog.TnRC)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdPRE), Following: cmds(dict.CmdREFab), Latency: v(catalog.TnRPpb)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdPREA), Following: cmds(dict.CmdREFab), Latency: v(catalog.TnRPab)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdRD32A), Following: cmds(dict.CmdREFab), Latency: v(catalog.TnRPpb) + v(catalog.TnRTP)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdWR32A), Following: cmds(dict.CmdREFab), Latency: v(catalog.TnCWL) + v(catalog.TnBL32) + v(catalog.TnWR) + v(catalog.TnRPpb)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdREFab), Following: cmds(dict.CmdREFab, dict.CmdACT1, dict.CmdREFpb), Latency: v(catalog.TnRFCab)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdREFpb), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnPBR2ACT)},
		{Level: dict.LevelRank, Preceding: cmds(dict.CmdREFpb), Following: cmds(dict.CmdREFpb), Latency: v(catalog.TnPBR2PBR)},

		// Same bankgroup.
		{Level: dict.LevelBankGroup, Preceding: cmds(dict.CmdRD32, dict.CmdRD32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: 4 * v(catalog.TnCCD)},
		{Level: dict.LevelBankGroup, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: 4 * v(catalog.TnCCD)},
		{Level: dict.LevelBankGroup, Preceding: cmds(dict.CmdWR32, dict.CmdWR32A), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnCWL) + v(catalog.TnBL32) + v(catalog.TnWTRL)},
		{Level: dict.LevelBankGroup, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnRRD)},

		// Bank.
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnRC)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdRD32, dict.CmdRD32A), Latency: v(catalog.TnRCDR)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdWR32, dict.CmdWR32A), Latency: v(catalog.TnRCDW)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdACT1), Following: cmds(dict.CmdPRE), Latency: v(catalog.TnRAS)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdPRE), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnRPpb)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdRD32), Following: cmds(dict.CmdPRE), Latency: v(catalog.TnRTP)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdWR32), Following: cmds(dict.CmdPRE), Latency: v(catalog.TnCWL) + v(catalog.TnBL32) + v(catalog.TnWR)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdRD32A), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnRTP) + v(catalog.TnRPpb)},
		{Level: dict.LevelBank, Preceding: cmds(dict.CmdWR32A), Following: cmds(dict.CmdACT1), Latency: v(catalog.TnCWL) + v(catalog.TnBL32) + v(catalog.TnWR) + v(catalog.TnRPpb)},
	}

	tbl := &Table{records: records}

	for i := range tbl.records {
		r := &tbl.records[i]

		for _, p := range r.Preceding {
			tbl.byPreceding[p] = append(tbl.byPreceding[p], r)
		}

		for _, f := range r.Following {
			tbl.byFollowing[f] = append(tbl.byFollowing[f], r)
		}
	}

	return tbl
}

func cmds(c ...dict.Command) []dict.Command { return c }

// withinBlockedWindow reports whether following, absent the record
// currently being applied, would become ready inside the exclusion zone
// [clk, clk+blocked) — i.e. it is not already pushed past the zone by some
// other, independently-applied record (the baseline spacing record or a
// rolling-window one). Only then does the blocked_offset record's own,
// larger latency need to apply (§4.3).
func withinBlockedWindow(r *node.Readiness, following dict.Command, clk node.Clk, blocked int) bool {
	return r.EarliestAllowed(following) < clk+node.Clk(blocked)
}

// scopedReadiness returns the Readiness table of the node at r's scope
// level that is relevant to addr.
func scopedReadiness(tr *node.Tree, level dict.Level, addr node.Addr) *node.Readiness {
	switch level {
	case dict.LevelChannel:
		return &tr.Channel(addr).Readiness
	case dict.LevelRank:
		return &tr.Rank(addr).Readiness
	case dict.LevelBankGroup:
		return &tr.BankGroup(addr).Readiness
	case dict.LevelBank:
		return &tr.Bank(addr).Readiness
	default:
		return nil
	}
}

// Ready reports whether cmd may legally be issued at addr at clk: every
// constraint record naming cmd as a following command must have its
// scoped node's earliest-allowable clock for cmd already at or before clk.
// Sibling records need no separate check here: Apply has already raised
// the sibling nodes' own tables.
func (t *Table) Ready(tr *node.Tree, cmd dict.Command, addr node.Addr, clk node.Clk) bool {
	for _, r := range t.byFollowing[cmd] {
		readiness := scopedReadiness(tr, r.Level, addr)
		if readiness == nil {
			continue
		}

		if clk < readiness.EarliestAllowed(cmd) {
			return false
		}
	}

	return true
}

// Apply raises the earliest-allowable clock of every command that cmd's
// issuance at addr and clk constrains, per every constraint record naming
// cmd as a preceding command, and records the issuance in the relevant
// scoped node's history ring for window-based records.
func (t *Table) Apply(tr *node.Tree, cmd dict.Command, addr node.Addr, clk node.Clk) {
	recorded := map[dict.Level]bool{}

	for _, r := range t.byPreceding[cmd] {
		target := scopedReadiness(tr, r.Level, addr)
		if target == nil {
			continue
		}

		if !recorded[r.Level] {
			target.RecordIssue(cmd, clk)
			recorded[r.Level] = true
		}

		for _, following := range r.Following {
			due := clk + node.Clk(r.Latency)

			if r.Window > 1 {
				// nFAW-style: the constraint only bites once `window`
				// issuances of the preceding command have accumulated;
				// raise the bar off the window-th most recent one.
				anchor, ok := target.NthMostRecent(cmd, r.Window)
				if !ok {
					continue
				}

				due = anchor + node.Clk(r.Latency)
			}

			if !r.IsSibling {
				if r.Blocked > 0 && !withinBlockedWindow(target, following, clk, r.Blocked) {
					// following is already scheduled clear of the exclusion
					// zone by some other record; this one need not
					// tighten it further.
					continue
				}

				target.Raise(following, due)

				continue
			}

			for _, sib := range tr.SiblingRanks(addr) {
				if r.Blocked > 0 && !withinBlockedWindow(&sib.Readiness, following, clk, r.Blocked) {
					continue
				}

				sib.Raise(following, due)
			}
		}
	}
}
