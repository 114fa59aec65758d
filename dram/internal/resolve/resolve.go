// Package resolve implements the prerequisite resolver and state-transition
// action tables (§4.4, §4.6): given a target command and address, walk the
// node state down to the command that must actually be issued next, and
// apply the state mutation a command issuance causes once it is issued.
package resolve

import (
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/errs"
	"github.com/Helios113/ramulator2/dram/internal/node"
)

// Preq resolves cmd against the current state of the node(s) addr reaches,
// returning the command that should actually be issued at clk. It returns
// cmd unchanged when no substitution is required.
func Preq(tr *node.Tree, cmd dict.Command, addr node.Addr, clk node.Clk) dict.Command {
	switch cmd {
	case dict.CmdRD32, dict.CmdWR32:
		return preqBankCAS(tr, cmd, addr, clk)
	case dict.CmdREFab, dict.CmdRFMab:
		return preqRankRequireAllBanksClosed(tr, cmd, addr)
	case dict.CmdREFpb, dict.CmdRFMpb:
		return preqRankPerBankRefresh(tr, cmd, addr)
	default:
		return cmd
	}
}

// preqBankCAS mirrors the LPDDR5X device model's bank-level RD32/WR32
// resolver (§4.4): a closed bank needs ACT-1 first, a pre-opened bank
// needs ACT-2, and an opened bank with a row-buffer hit needs a fresh
// CASRD/CASWR once the rank's CAS-sync window has elapsed.
func preqBankCAS(tr *node.Tree, cmd dict.Command, addr node.Addr, clk node.Clk) dict.Command {
	bank := tr.Bank(addr)

	switch bank.State {
	case dict.StateClosed:
		return dict.CmdACT1
	case dict.StatePreOpened:
		return dict.CmdACT2
	case dict.StateOpened:
		if _, hit := bank.RowState[addr.Row]; !hit {
			return dict.CmdPRE
		}

		rank := tr.Rank(addr)
		if rank.FinalSyncedCycle < clk {
			if cmd == dict.CmdRD32 {
				return dict.CmdCASRD
			}

			return dict.CmdCASWR
		}

		return cmd
	default:
		panic(errs.NewInternalInvariantViolation(
			"bank in state %s cannot resolve a %s prerequisite", bank.State, cmd))
	}
}

// preqRankRequireAllBanksClosed mirrors Lambdas::Preq::Rank::RequireAllBanksClosed:
// REFab/RFMab require every bank in the rank to be Closed first, else PREA
// must be issued.
func preqRankRequireAllBanksClosed(tr *node.Tree, cmd dict.Command, addr node.Addr) dict.Command {
	if !PreqRequireAllBanksClosed(tr, addr) {
		return dict.CmdPREA
	}

	return cmd
}

// preqRankPerBankRefresh mirrors the REFpb/RFMpb resolver: the command
// targets flat bank id target_id and its LPDDR5X bank-pair partner
// target_id+8; if either is not Closed, PRE is issued for it first.
func preqRankPerBankRefresh(tr *node.Tree, cmd dict.Command, addr node.Addr) dict.Command {
	targetFlat := tr.FlatBankID(addr)
	partnerFlat := targetFlat + 8

	for _, flat := range []int{targetFlat, partnerFlat} {
		bank, _ := tr.BankByFlatID(addr, flat)
		if bank.State != dict.StateClosed {
			return dict.CmdPRE
		}
	}

	return cmd
}

// PreqRequireAllBanksClosed is the rank-scoped entry point used by Preq,
// kept as a standalone exported func so higher layers (the top-level
// Device) can evaluate "is this rank ready to refresh" without going
// through the full Preq switch.
func PreqRequireAllBanksClosed(tr *node.Tree, addr node.Addr) bool {
	for _, b := range tr.AllBanksInRank(addr) {
		if b.State != dict.StateClosed {
			return false
		}
	}

	return true
}

// Act applies the state mutation caused by issuing cmd at addr and clk
// (§4.6). It is the caller's responsibility to have already verified
// Preq(cmd) == cmd and Ready(cmd) before calling Act.
func Act(tr *node.Tree, cmd dict.Command, addr node.Addr, clk node.Clk, timing CASTiming) {
	switch cmd {
	case dict.CmdPREA:
		actRankPREA(tr, addr)
	case dict.CmdCASRD:
		tr.Rank(addr).FinalSyncedCycle = clk + node.Clk(timing.NCL+timing.NBL32+1)
	case dict.CmdCASWR:
		tr.Rank(addr).FinalSyncedCycle = clk + node.Clk(timing.NCWL+timing.NBL32+1)
	case dict.CmdRD32:
		tr.Rank(addr).FinalSyncedCycle = clk + node.Clk(timing.NCL+timing.NBL32)
	case dict.CmdWR32:
		tr.Rank(addr).FinalSyncedCycle = clk + node.Clk(timing.NCWL+timing.NBL32)
	case dict.CmdACT1:
		actBankACT1(tr, addr)
	case dict.CmdACT2:
		actBankACT2(tr, addr)
	case dict.CmdPRE:
		actBankPRE(tr, addr)
	case dict.CmdRD32A, dict.CmdWR32A:
		actBankPRE(tr, addr)
	}
}

// CASTiming carries the small slice of the resolved timing vector that
// Act's CAS-sync bookkeeping needs, so this package does not have to
// import catalog just for three integers.
type CASTiming struct {
	NCL   int
	NBL32 int
	NCWL  int
}

// actRankPREA mirrors Lambdas::Action::Rank::PREab: every bank in the rank
// closes, and every open row record is discarded.
func actRankPREA(tr *node.Tree, addr node.Addr) {
	for _, b := range tr.AllBanksInRank(addr) {
		b.State = dict.StateClosed
		for row := range b.RowState {
			delete(b.RowState, row)
		}
	}
}

// actBankACT1 opens the target row in the Pre-Opened state, per the device
// model's first-phase activate: the bank and its target row both move to
// Pre-Opened, ahead of the nRCD* latency the constraint table gates the
// following CAS on.
func actBankACT1(tr *node.Tree, addr node.Addr) {
	bank := tr.Bank(addr)
	bank.State = dict.StatePreOpened
	bank.RowState[addr.Row] = dict.StatePreOpened
}

// actBankACT2 completes the activate: the bank and its target row move to
// Opened, at which point RD32/WR32 against that row become row-buffer
// hits.
func actBankACT2(tr *node.Tree, addr node.Addr) {
	bank := tr.Bank(addr)
	bank.State = dict.StateOpened
	bank.RowState[addr.Row] = dict.StateOpened
}

// actBankPRE mirrors Lambdas::Action::Bank::PRE: the bank closes and its
// open-row record is discarded.
func actBankPRE(tr *node.Tree, addr node.Addr) {
	bank := tr.Bank(addr)
	bank.State = dict.StateClosed

	for row := range bank.RowState {
		delete(bank.RowState, row)
	}
}
