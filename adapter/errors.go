package adapter

import "fmt"

// BackpressureRefused reports that the memory system's front end declined
// a request this cycle (§7); it is non-fatal — the adapter keeps the
// request at the head of its queue and retries on the next cycle.
type BackpressureRefused struct {
	Address uint64
}

func (e *BackpressureRefused) Error() string {
	return fmt.Sprintf("adapter: request for address %#x refused by backpressure", e.Address)
}
