// Package adapter implements the controller adapter (§4.7): a bounded
// request queue in front of a dram.Device, a per-cycle tick that forwards
// at most one request into the device's front end, and a return queue of
// completed requests.
package adapter

import (
	"log"
	"os"

	"github.com/Helios113/ramulator2/dram"
)

// Controller is the bounded-queue adapter in front of one dram.Device.
type Controller struct {
	device   *dram.Device
	frontend *frontend
	stats    *stats

	capacity int
	queue    []*MemFetch

	returnQueue []*MemFetch

	clk dram.Clk
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithCapacity overrides the default request queue capacity (64).
func WithCapacity(n int) Option {
	return func(c *Controller) { c.capacity = n }
}

// WithLogInterval sets the cycle interval at which bandwidth statistics are
// logged (§6 Statistics). 0 disables periodic logging.
func WithLogInterval(cycles int) Option {
	return func(c *Controller) { c.stats.logInterval = cycles }
}

// WithLogLevel sets whether this controller's periodic log lines are
// tagged info or debug (§12 supplemented feature: cadence split by channel).
func WithLogLevel(level LogLevel) Option {
	return func(c *Controller) { c.stats.logLevel = level }
}

// WithLogger overrides the *log.Logger statistics are written through.
// Defaults to one writing to os.Stderr, mirroring the reference module's
// own log.Logger embedding.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.stats.Logger = logger }
}

// NewController builds a Controller in front of device, with a default
// queue capacity of 64 (§9 Open Questions: the spec adopts 64 or 256,
// configurable; 64 is the default here, overridable via WithCapacity).
func NewController(name string, device *dram.Device, opts ...Option) *Controller {
	burstWidth := device.Organization().DQBits

	c := &Controller{
		device:   device,
		frontend: newFrontend(device),
		capacity: 64,
		stats: newStats(
			log.New(os.Stderr, "", log.LstdFlags),
			name, burstWidth, 0, LogLevelInfo),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Full reports whether the request queue is at capacity.
func (c *Controller) Full() bool {
	return len(c.queue) >= c.capacity
}

// Push appends mf to the request queue. It is undefined behavior to call
// Push when Full() is true.
func (c *Controller) Push(mf *MemFetch) {
	c.queue = append(c.queue, mf)
}

// Cycle advances the controller by one clock (§4.7 cycle()): it attempts
// to forward the queue head into the device's front end, then advances
// the front end by one tick, then logs statistics at log_interval
// boundaries.
func (c *Controller) Cycle() {
	if len(c.queue) > 0 {
		head := c.queue[0]
		if c.acceptIntoDevice(head) {
			c.queue = c.queue[1:]
		}
	}

	c.frontend.tick(c.clk)
	c.stats.maybeLog(c.clk)

	c.clk++
}

// acceptIntoDevice attempts to forward mf into the front end. On refusal it
// surfaces the *BackpressureRefused the front end returned (§7) by logging
// it; the caller retains mf at the head of the queue and retries on the
// next cycle.
func (c *Controller) acceptIntoDevice(mf *MemFetch) bool {
	cmd := dram.CmdRD32
	if mf.WriteFlag {
		cmd = dram.CmdWR32
	}

	ok, refused := c.frontend.receiveExternalRequest(mf.WriteFlag, mf.Address, cmd, func() {
		mf.SetReply()

		if mf.WriteFlag {
			c.stats.recordWrite()
		} else {
			c.stats.recordRead()
		}

		c.returnQueue = append(c.returnQueue, mf)
	})

	if refused != nil {
		c.stats.Printf("%sbackpressure: %v", LogLevelDebug.prefix(), refused)
	}

	return ok
}

// ReturnQueueTop returns the completed request at the head of the return
// queue, or nil if it is empty.
func (c *Controller) ReturnQueueTop() *MemFetch {
	if len(c.returnQueue) == 0 {
		return nil
	}

	return c.returnQueue[0]
}

// ReturnQueuePop removes and returns the completed request at the head of
// the return queue, or nil if it is empty.
func (c *Controller) ReturnQueuePop() *MemFetch {
	top := c.ReturnQueueTop()
	if top == nil {
		return nil
	}

	c.returnQueue = c.returnQueue[1:]

	return top
}

// Finish emits the final statistics line and resets the interval counters;
// the front end itself is left as it is. No further Cycle calls are
// permitted after Finish.
func (c *Controller) Finish() {
	c.stats.finish(c.clk)
}
