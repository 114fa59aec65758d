package adapter

import (
	"github.com/Helios113/ramulator2/dram"
)

// deviceFace is the timing/state engine façade the front end drives one
// command at a time. *dram.Device satisfies it; tests substitute a
// hand-written mock (mock_device.go) to exercise the front end's
// prerequisite-walking and completion-scheduling logic in isolation from
// the real constraint lattice.
type deviceFace interface {
	Organization() dram.Organization
	GetPreqCommand(cmd dram.Command, addr dram.Addr, clk dram.Clk) dram.Command
	CheckReady(cmd dram.Command, addr dram.Addr, clk dram.Clk) bool
	IssueCommand(cmd dram.Command, addr dram.Addr, clk dram.Clk)
	ReadLatency() int
	WriteLatency() int
}

// completionFunc is invoked once a request's servicing command has been
// issued to the device; it carries no captured mutable state beyond what
// the caller closes over (§9 Design Notes).
type completionFunc func()

// inflight tracks one request's progress through the device's prerequisite
// chain, from the request command (RD32/WR32/REFab/REFpb) down to
// whichever prerequisite must be issued next.
type inflight struct {
	addr     dram.Addr
	cmd      dram.Command
	callback completionFunc
}

type pendingCompletion struct {
	due      dram.Clk
	callback completionFunc
}

// frontend is the device's front end (§2 data flow: "forwards (address,
// r/w) to the engine's front end"): it decodes requests into device
// commands, walks each one through prerequisite resolution one tick at a
// time, and fires completion callbacks once the requested command has
// actually been issued.
// frontendBacklog bounds how many requests the front end will hold beyond
// the one currently being resolved, before refusing new ones with
// BackpressureRefused. A small backlog lets a handful of requests overlap
// their completion latency with the next request's resolution, without
// letting the adapter's own bounded queue drain unboundedly into this one.
const frontendBacklog = 8

type frontend struct {
	device  deviceFace
	addrMap addrMapper

	accepted []*inflight
	current  *inflight

	completions []pendingCompletion
}

func newFrontend(device deviceFace) *frontend {
	return &frontend{
		device:  device,
		addrMap: newAddrMapper(device.Organization()),
	}
}

// receiveExternalRequest is receive_external_requests (§6): it decodes the
// address and enqueues the request for resolution, refusing with a
// *BackpressureRefused once the front end's own backlog is full.
func (f *frontend) receiveExternalRequest(
	writeFlag bool, address uint64, cmd dram.Command, callback completionFunc,
) (bool, *BackpressureRefused) {
	if len(f.accepted) >= frontendBacklog {
		return false, &BackpressureRefused{Address: address}
	}

	addr := f.addrMap.Decode(address)

	f.accepted = append(f.accepted, &inflight{
		addr:     addr,
		cmd:      cmd,
		callback: callback,
	})

	return true, nil
}

// tick advances the front end by one clock: it fires any completions whose
// deadline has arrived, then makes at most one unit of progress on the
// in-flight request at the head of the queue.
func (f *frontend) tick(clk dram.Clk) (madeProgress bool) {
	madeProgress = f.fireDueCompletions(clk) || madeProgress
	madeProgress = f.progressCurrent(clk) || madeProgress

	return madeProgress
}

func (f *frontend) fireDueCompletions(clk dram.Clk) bool {
	fired := false

	remaining := f.completions[:0]

	for _, c := range f.completions {
		if clk >= c.due {
			c.callback()
			fired = true

			continue
		}

		remaining = append(remaining, c)
	}

	f.completions = remaining

	return fired
}

func (f *frontend) progressCurrent(clk dram.Clk) bool {
	if f.current == nil {
		if len(f.accepted) == 0 {
			return false
		}

		f.current = f.accepted[0]
		f.accepted = f.accepted[1:]
	}

	req := f.current

	step := f.device.GetPreqCommand(req.cmd, req.addr, clk)
	if !f.device.CheckReady(step, req.addr, clk) {
		return false
	}

	f.device.IssueCommand(step, req.addr, clk)

	if step != req.cmd {
		// A prerequisite was issued; the request itself has not completed
		// yet, but real progress (a command was issued) was made this tick.
		return true
	}

	f.completions = append(f.completions, pendingCompletion{
		due:      clk + dram.Clk(f.completionDelay(req.cmd)),
		callback: req.callback,
	})
	f.current = nil

	return true
}

// completionDelay is the extra latency between issuing the servicing
// command and the request's data/acknowledgement becoming available:
// ReadLatency for reads, the fixed write pipeline delay (nCWL+nBL32) for
// writes, and immediate for refresh commands (they carry no data).
func (f *frontend) completionDelay(cmd dram.Command) int {
	switch cmd {
	case dram.CmdRD32:
		return f.device.ReadLatency()
	case dram.CmdWR32:
		return f.device.WriteLatency()
	default:
		return 0
	}
}
