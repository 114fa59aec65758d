// Package dram implements a JEDEC-timed LPDDR5X device model: a
// hierarchical node tree tracking per-level state, a timing constraint
// table, and the prerequisite-resolution/row-buffer logic a controller
// adapter drives one clock cycle at a time.
package dram

import (
	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/constraint"
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/node"
	"github.com/Helios113/ramulator2/dram/internal/resolve"
	"github.com/Helios113/ramulator2/dram/internal/rowbuffer"
)

// Addr is a fully decoded hierarchical address, re-exported from the
// internal node package so callers never need to import it directly.
type Addr = node.Addr

// Organization describes device density and per-level fan-out, re-exported
// from the internal catalog package.
type Organization = catalog.Organization

// Timings is the fixed-order resolved timing value vector, re-exported
// from the internal catalog package.
type Timings = catalog.Timings

// Timing indexes the fixed-order timing value vector, re-exported from the
// internal catalog package so configuration loaders outside this module
// tree can resolve timing names without reaching into an internal package.
type Timing = catalog.Timing

// OrgOverrides carries the optional per-field organization overrides a
// Builder (or an external configuration loader) may supply.
type OrgOverrides = catalog.OrgOverrides

// TimingOverrides carries the optional per-timing overrides a Builder (or
// an external configuration loader) may supply.
type TimingOverrides = catalog.TimingOverrides

// TimingByName resolves a cycle-count or nanosecond timing name (e.g.
// "nRCDR" or "tRCDR") to its Timing index.
func TimingByName(name string) (Timing, bool) { return catalog.TimingByName(name) }

// Clk is a discrete clock cycle count.
type Clk = node.Clk

// Command identifies a DRAM command.
type Command = dict.Command

// Request identifies an external memory access kind.
type Request = dict.Request

// Re-exported command and request constants, so callers of this package
// never need to import dram/internal/dict directly.
const (
	CmdACT1  = dict.CmdACT1
	CmdACT2  = dict.CmdACT2
	CmdPRE   = dict.CmdPRE
	CmdPREA  = dict.CmdPREA
	CmdCASRD = dict.CmdCASRD
	CmdCASWR = dict.CmdCASWR
	CmdRD32  = dict.CmdRD32
	CmdWR32  = dict.CmdWR32
	CmdRD32A = dict.CmdRD32A
	CmdWR32A = dict.CmdWR32A
	CmdREFab = dict.CmdREFab
	CmdREFpb = dict.CmdREFpb
	CmdRFMab = dict.CmdRFMab
	CmdRFMpb = dict.CmdRFMpb

	ReqRead16         = dict.ReqRead16
	ReqWrite16        = dict.ReqWrite16
	ReqAllBankRefresh = dict.ReqAllBankRefresh
	ReqPerBankRefresh = dict.ReqPerBankRefresh
)

// Device is a built LPDDR5X device model: a resolved organization and
// timing vector, the node tree they describe, and the constraint table
// derived from the timing vector.
type Device struct {
	org        catalog.Organization
	timing     catalog.Timings
	tree       *node.Tree
	constraint *constraint.Table
	casTiming  resolve.CASTiming
}

// Organization returns the device's resolved organization.
func (d *Device) Organization() catalog.Organization { return d.org }

// Timing returns the device's resolved timing vector.
func (d *Device) Timing() catalog.Timings { return d.timing }

// ReadLatency returns nCL + 3*nBL32, the fixed pipeline latency from a CAS
// read issuance to data availability.
func (d *Device) ReadLatency() int { return d.timing.ReadLatency() }

// WriteLatency returns nCWL + nBL32, the fixed pipeline latency from a CAS
// write issuance to the write completing on the DQ bus.
func (d *Device) WriteLatency() int {
	return d.timing[catalog.TnCWL] + d.timing[catalog.TnBL32]
}

// TranslateRequest resolves an external request kind into the device
// command that services it.
func (d *Device) TranslateRequest(r Request) Command { return r.Command() }

// CheckReady reports whether cmd may legally be issued at addr at clk,
// i.e. every timing constraint that cmd's issuance would have to satisfy
// is already cleared.
func (d *Device) CheckReady(cmd Command, addr Addr, clk Clk) bool {
	return d.constraint.Ready(d.tree, cmd, addr, clk)
}

// GetPreqCommand resolves cmd against the current node state at addr,
// returning the command that must actually be issued next (which may be
// cmd itself, or a prerequisite such as ACT-1/ACT-2/PRE/PREA/CASRD/CASWR).
func (d *Device) GetPreqCommand(cmd Command, addr Addr, clk Clk) Command {
	return resolve.Preq(d.tree, cmd, addr, clk)
}

// IssueCommand applies the state-transition action and raises the
// constraint table's earliest-allowable clocks for a command the caller
// has already verified is ready and free of any unresolved prerequisite.
func (d *Device) IssueCommand(cmd Command, addr Addr, clk Clk) {
	resolve.Act(d.tree, cmd, addr, clk, d.casTiming)
	d.constraint.Apply(d.tree, cmd, addr, clk)
}

// CheckRowBufferHit reports whether addr's target row is already open in
// its bank's row buffer.
func (d *Device) CheckRowBufferHit(addr Addr) bool {
	return rowbuffer.Hit(d.tree, addr)
}

// CheckRowBufferOpen reports whether addr's bank has any row open, without
// regard to which row.
func (d *Device) CheckRowBufferOpen(addr Addr) bool {
	return rowbuffer.Open(d.tree, addr)
}
