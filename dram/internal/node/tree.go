// Package node implements the hierarchical node tree (§3, §4.3 Design
// Notes): one arena per tree level, per-node readiness tables, and the
// sparse per-bank open-row map. Rows and columns are never materialized as
// their own nodes — a device's row count can run into the tens of
// thousands, so an open row is recorded sparsely in the owning bank's
// RowState map instead, exactly as the reference model does.
package node

import (
	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/dict"
)

// Clk is a discrete clock cycle count.
type Clk int64

// historyDepth bounds how many past issue clocks a Readiness table keeps
// per command. The widest rolling-window constraint in the timing table is
// nFAW (4-in-window), so 4 would suffice; a little slack makes the ring
// robust to future constraint additions without a resize.
const historyDepth = 8

// Readiness holds the per-node, per-command earliest-allowable-clock table
// (§3 "Per-node readiness state") plus a short issue-history ring used to
// evaluate rolling-window constraints such as nFAW.
type Readiness struct {
	earliest [dict.NumCommands]Clk
	history  [dict.NumCommands][]Clk
}

// EarliestAllowed returns the earliest clock at which cmd is legal on this
// node, given everything issued on it so far.
func (r *Readiness) EarliestAllowed(cmd dict.Command) Clk {
	return r.earliest[cmd]
}

// Raise advances cmd's earliest-allowable clock to at least clk. It never
// lowers it: a later, looser constraint must not undo an earlier, tighter
// one.
func (r *Readiness) Raise(cmd dict.Command, clk Clk) {
	if clk > r.earliest[cmd] {
		r.earliest[cmd] = clk
	}
}

// RecordIssue appends clk to cmd's issue history, used by rolling-window
// constraints to look back K issuances.
func (r *Readiness) RecordIssue(cmd dict.Command, clk Clk) {
	h := append(r.history[cmd], clk)
	if len(h) > historyDepth {
		h = h[len(h)-historyDepth:]
	}

	r.history[cmd] = h
}

// NthMostRecent returns the clock of the n-th most recent issuance of cmd
// (n=1 is the most recent), and whether that many issuances exist.
func (r *Readiness) NthMostRecent(cmd dict.Command, n int) (Clk, bool) {
	h := r.history[cmd]
	if n <= 0 || n > len(h) {
		return 0, false
	}

	return h[len(h)-n], true
}

// Bank is a leaf of the materialized tree. Its State and RowState are the
// only pieces of state §4.6's actions mutate at or below row granularity.
type Bank struct {
	Readiness
	State    dict.State
	RowState map[int]dict.State
}

// BankGroup groups Banks. It carries its own Readiness table because
// several constraints (e.g. 4*nCCD same-bankgroup CAS spacing, nRRD
// activate spacing) are scoped to "any other bank in this bankgroup"
// rather than to one specific bank.
type BankGroup struct {
	Readiness
	Banks []Bank
}

// Rank groups BankGroups. FinalSyncedCycle is the CAS-sync deadline that
// bank-level RD32/WR32 prerequisite resolution consults (§4.4).
type Rank struct {
	Readiness
	State            dict.State
	FinalSyncedCycle Clk
	BankGroups       []BankGroup
}

// Channel is the root of one device channel's tree.
type Channel struct {
	Readiness
	Ranks []Rank
}

// Tree is the full per-device forest: one Channel per channel coordinate.
type Tree struct {
	Channels []Channel
}

// NewTree builds a Tree sized from org.Count, with every node in its
// level's initial state (§3 "Initial per level").
func NewTree(org catalog.Organization) *Tree {
	numChannel := org.Count[dict.LevelChannel]
	numRank := org.Count[dict.LevelRank]
	numBankGroup := org.Count[dict.LevelBankGroup]
	numBank := org.Count[dict.LevelBank]

	t := &Tree{Channels: make([]Channel, numChannel)}

	for c := range t.Channels {
		ch := &t.Channels[c]
		ch.Ranks = make([]Rank, numRank)

		for r := range ch.Ranks {
			rk := &ch.Ranks[r]
			rk.State = dict.LevelRank.InitState()
			// No CAS sync has happened yet, so the first RD32/WR32 at any
			// clock needs a CASRD/CASWR first.
			rk.FinalSyncedCycle = -1
			rk.BankGroups = make([]BankGroup, numBankGroup)

			for g := range rk.BankGroups {
				bg := &rk.BankGroups[g]
				bg.Banks = make([]Bank, numBank)

				for b := range bg.Banks {
					bk := &bg.Banks[b]
					bk.State = dict.LevelBank.InitState()
					bk.RowState = make(map[int]dict.State)
				}
			}
		}
	}

	return t
}

// Bank looks up the bank node addressed by a.
func (t *Tree) Bank(a Addr) *Bank {
	return &t.Channels[a.Channel].Ranks[a.Rank].BankGroups[a.BankGroup].Banks[a.Bank]
}

// BankGroup looks up the bankgroup node addressed by a.
func (t *Tree) BankGroup(a Addr) *BankGroup {
	return &t.Channels[a.Channel].Ranks[a.Rank].BankGroups[a.BankGroup]
}

// Rank looks up the rank node addressed by a.
func (t *Tree) Rank(a Addr) *Rank {
	return &t.Channels[a.Channel].Ranks[a.Rank]
}

// Channel looks up the channel node addressed by a.
func (t *Tree) Channel(a Addr) *Channel {
	return &t.Channels[a.Channel]
}

// SiblingBanks returns every bank in bg.
func (bg *BankGroup) SiblingBanks() []Bank {
	return bg.Banks
}

// SiblingRanks returns every rank under the same channel as a's rank,
// excluding a's own rank; used by cross-rank (is_sibling) constraints.
func (t *Tree) SiblingRanks(a Addr) []*Rank {
	ch := &t.Channels[a.Channel]

	var siblings []*Rank

	for i := range ch.Ranks {
		if i == a.Rank {
			continue
		}

		siblings = append(siblings, &ch.Ranks[i])
	}

	return siblings
}

// OtherBanksInBankGroup returns every bank in a's bankgroup other than a's
// own bank.
func (t *Tree) OtherBanksInBankGroup(a Addr) []*Bank {
	bg := t.BankGroup(a)

	var others []*Bank

	for i := range bg.Banks {
		if i == a.Bank {
			continue
		}

		others = append(others, &bg.Banks[i])
	}

	return others
}

// AllBanksInRank returns every bank under a's rank, across all bankgroups.
func (t *Tree) AllBanksInRank(a Addr) []*Bank {
	rk := t.Rank(a)

	var banks []*Bank

	for g := range rk.BankGroups {
		bg := &rk.BankGroups[g]
		for b := range bg.Banks {
			banks = append(banks, &bg.Banks[b])
		}
	}

	return banks
}

// FlatBankID returns the bank's flattened index within its rank
// (bankgroup*banksPerGroup + bank), the numbering LPDDR5X per-bank refresh
// pairing (bank i with bank i+8) is defined over.
func (t *Tree) FlatBankID(a Addr) int {
	banksPerGroup := len(t.Rank(a).BankGroups[a.BankGroup].Banks)
	return a.BankGroup*banksPerGroup + a.Bank
}

// BankByFlatID returns the bank addressed by a's channel/rank and the given
// flattened bank id (see FlatBankID).
func (t *Tree) BankByFlatID(a Addr, flatID int) (*Bank, Addr) {
	rk := t.Rank(a)
	banksPerGroup := len(rk.BankGroups[0].Banks)
	bg := flatID / banksPerGroup
	bank := flatID % banksPerGroup

	target := a
	target.BankGroup = bg
	target.Bank = bank

	return &rk.BankGroups[bg].Banks[bank], target
}
