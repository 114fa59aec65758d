package adapter

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Helios113/ramulator2/dram"
)

func TestAdapter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Adapter Suite")
}

func newTestDevice() *dram.Device {
	dev, err := dram.MakeBuilder().
		WithOrgPreset("LPDDR5X_8Gb_x16").
		WithTimingPreset("LPDDR5X_8533").
		Build()
	Expect(err).NotTo(HaveOccurred())

	return dev
}

var _ = Describe("Controller", func() {
	var (
		dev *dram.Device
		ctl *Controller
	)

	BeforeEach(func() {
		dev = newTestDevice()
		ctl = NewController("ch0", dev)
	})

	It("round-trips a read request to the return queue", func() {
		mf := NewMemFetch(0x1000, false, 32, nil)
		ctl.Push(mf)

		Expect(ctl.ReturnQueueTop()).To(BeNil())

		for i := 0; i < 10_000 && ctl.ReturnQueueTop() == nil; i++ {
			ctl.Cycle()
		}

		completed := ctl.ReturnQueuePop()
		Expect(completed).NotTo(BeNil())
		Expect(completed.ID).To(Equal(mf.ID))
		Expect(completed.RequestFlag).To(BeFalse())
	})

	It("round-trips a write request to the return queue", func() {
		mf := NewMemFetch(0x2000, true, 32, []byte("payload"))
		ctl.Push(mf)

		for i := 0; i < 10_000 && ctl.ReturnQueueTop() == nil; i++ {
			ctl.Cycle()
		}

		completed := ctl.ReturnQueuePop()
		Expect(completed).NotTo(BeNil())
		Expect(completed.WriteFlag).To(BeTrue())
	})

	It("services requests in FIFO order", func() {
		first := NewMemFetch(0x1000, false, 32, nil)
		second := NewMemFetch(0x4000, false, 32, nil)
		ctl.Push(first)
		ctl.Push(second)

		for i := 0; i < 20_000 && len(ctl.returnQueue) < 2; i++ {
			ctl.Cycle()
		}

		Expect(ctl.ReturnQueuePop().ID).To(Equal(first.ID))
		Expect(ctl.ReturnQueuePop().ID).To(Equal(second.ID))
	})

	It("reports Full once the queue reaches its capacity", func() {
		small := NewController("ch0", dev, WithCapacity(2))
		Expect(small.Full()).To(BeFalse())

		small.Push(NewMemFetch(0x0, false, 32, nil))
		Expect(small.Full()).To(BeFalse())

		small.Push(NewMemFetch(0x40, false, 32, nil))
		Expect(small.Full()).To(BeTrue())
	})

	It("drains the queue below capacity as cycles forward requests", func() {
		small := NewController("ch0", dev, WithCapacity(1))
		small.Push(NewMemFetch(0x0, false, 32, nil))
		Expect(small.Full()).To(BeTrue())

		for i := 0; i < 10 && small.Full(); i++ {
			small.Cycle()
		}

		Expect(small.Full()).To(BeFalse())
	})

	It("does not disturb cumulative stats across Finish", func() {
		mf := NewMemFetch(0x1000, false, 32, nil)
		ctl.Push(mf)

		for i := 0; i < 10_000 && ctl.ReturnQueueTop() == nil; i++ {
			ctl.Cycle()
		}

		before := ctl.stats.cumulativeReads
		Expect(before).To(Equal(1))

		ctl.Finish()

		Expect(ctl.stats.cumulativeReads).To(Equal(before))
		Expect(ctl.stats.intervalReads).To(Equal(0))
	})
})

var _ = Describe("frontend", func() {
	It("refuses new requests once its backlog is full", func() {
		dev := newTestDevice()
		f := newFrontend(dev)

		accepted := 0
		for i := 0; i < frontendBacklog; i++ {
			ok, refused := f.receiveExternalRequest(false, uint64(i)*0x1000, dram.CmdRD32, func() {})
			Expect(ok).To(BeTrue())
			Expect(refused).To(BeNil())
			accepted++
		}

		ok, refused := f.receiveExternalRequest(false, 0xffff000, dram.CmdRD32, func() {})
		Expect(ok).To(BeFalse())
		Expect(refused).NotTo(BeNil())
		Expect(refused.Address).To(Equal(uint64(0xffff000)))
		Expect(accepted).To(Equal(frontendBacklog))
	})
})
