package dram

import (
	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/constraint"
	"github.com/Helios113/ramulator2/dram/internal/node"
	"github.com/Helios113/ramulator2/dram/internal/resolve"
)

// Builder builds a Device from an organization preset/overrides and a
// timing preset/overrides, following the same fluent With* idiom the
// controller-adapter configuration uses.
type Builder struct {
	orgOverrides    catalog.OrgOverrides
	timingOverrides catalog.TimingOverrides
}

// MakeBuilder creates a builder with no preset selected; callers must
// supply either WithOrgPreset or a full set of WithOrg* overrides, and
// likewise for timing.
func MakeBuilder() Builder {
	return Builder{}
}

// WithOrgPreset selects a named organization preset (e.g. "LPDDR5X_8Gb_x16").
func (b Builder) WithOrgPreset(name string) Builder {
	b.orgOverrides.Preset = name
	return b
}

// WithDensityMb overrides the organization's density in megabits.
func (b Builder) WithDensityMb(mb int) Builder {
	b.orgOverrides.DensityMb = &mb
	return b
}

// WithDQBits overrides the organization's per-device data width.
func (b Builder) WithDQBits(bits int) Builder {
	b.orgOverrides.DQBits = &bits
	return b
}

// WithChannelWidth overrides the organization's channel width in bits.
func (b Builder) WithChannelWidth(bits int) Builder {
	b.orgOverrides.ChannelWidth = &bits
	return b
}

// WithChannelCount overrides the number of channels.
func (b Builder) WithChannelCount(n int) Builder {
	b.orgOverrides.Channel = &n
	return b
}

// WithRankCount overrides the number of ranks per channel.
func (b Builder) WithRankCount(n int) Builder {
	b.orgOverrides.Rank = &n
	return b
}

// WithBankGroupCount overrides the number of bankgroups per rank.
func (b Builder) WithBankGroupCount(n int) Builder {
	b.orgOverrides.BankGroup = &n
	return b
}

// WithBankCount overrides the number of banks per bankgroup.
func (b Builder) WithBankCount(n int) Builder {
	b.orgOverrides.Bank = &n
	return b
}

// WithRowCount overrides the number of rows per bank.
func (b Builder) WithRowCount(n int) Builder {
	b.orgOverrides.Row = &n
	return b
}

// WithColumnCount overrides the number of columns per row.
func (b Builder) WithColumnCount(n int) Builder {
	b.orgOverrides.Column = &n
	return b
}

// WithTimingPreset selects a named speed-bin preset (e.g. "LPDDR5X_8533").
func (b Builder) WithTimingPreset(name string) Builder {
	b.timingOverrides.Preset = name
	return b
}

// WithRate sets the transfer rate in MT/s; mutually exclusive with
// WithTimingPreset.
func (b Builder) WithRate(mts int) Builder {
	b.timingOverrides.Rate = &mts
	return b
}

// WithTimingCycles overrides a single timing entry by a whole cycle count.
func (b Builder) WithTimingCycles(name catalog.Timing, cycles int) Builder {
	if b.timingOverrides.CycleOverrides == nil {
		b.timingOverrides.CycleOverrides = map[catalog.Timing]int{}
	}

	b.timingOverrides.CycleOverrides[name] = cycles

	return b
}

// WithTimingNs overrides a single timing entry in nanoseconds, JEDEC
// rounded to a whole cycle count at build time.
func (b Builder) WithTimingNs(name catalog.Timing, ns float64) Builder {
	if b.timingOverrides.NsOverrides == nil {
		b.timingOverrides.NsOverrides = map[catalog.Timing]float64{}
	}

	b.timingOverrides.NsOverrides[name] = ns

	return b
}

// Build resolves the organization and timing configuration, validates
// them, and constructs a fresh Device with its node tree in the initial
// per-level state.
func (b Builder) Build() (*Device, error) {
	org, err := catalog.LoadOrganization(b.orgOverrides)
	if err != nil {
		return nil, err
	}

	timing, err := catalog.LoadTiming(b.timingOverrides, org)
	if err != nil {
		return nil, err
	}

	tree := node.NewTree(org)
	table := constraint.Build(timing)

	return &Device{
		org:        org,
		timing:     timing,
		tree:       tree,
		constraint: table,
		casTiming: resolve.CASTiming{
			NCL:   timing[catalog.TnCL],
			NBL32: timing[catalog.TnBL32],
			NCWL:  timing[catalog.TnCWL],
		},
	}, nil
}
