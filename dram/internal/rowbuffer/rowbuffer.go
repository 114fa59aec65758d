// Package rowbuffer implements the row-buffer hit/open predicates (§4.5):
// whether a command's target row is already sitting in the row buffer, and
// whether the bank has any row open at all.
package rowbuffer

import (
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/errs"
	"github.com/Helios113/ramulator2/dram/internal/node"
)

// Hit reports whether addr's target row is already Opened in its bank,
// i.e. whether an RD32 or WR32 to addr would be serviced without an
// activate/precharge round trip.
func Hit(tr *node.Tree, addr node.Addr) bool {
	bank := tr.Bank(addr)

	switch bank.State {
	case dict.StateClosed, dict.StatePreOpened:
		return false
	case dict.StateOpened:
		_, open := bank.RowState[addr.Row]
		return open
	default:
		panic(errs.NewInternalInvariantViolation(
			"bank in state %s cannot resolve a row-buffer hit check", bank.State))
	}
}

// Open reports whether addr's bank has any row open at all, regardless of
// which row a pending command targets.
func Open(tr *node.Tree, addr node.Addr) bool {
	bank := tr.Bank(addr)

	switch bank.State {
	case dict.StateClosed, dict.StatePreOpened:
		return false
	case dict.StateOpened:
		return true
	default:
		panic(errs.NewInternalInvariantViolation(
			"bank in state %s cannot resolve a row-buffer open check", bank.State))
	}
}
