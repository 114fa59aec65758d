// Package config loads the YAML configuration tree that describes a
// memory system: the device organization and timing to build, and the
// adapter's queue/logging parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Helios113/ramulator2/dram"
)

// Organization mirrors dram.OrgOverrides in YAML-tagged form.
type Organization struct {
	Preset       string `yaml:"preset"`
	DensityMb    *int   `yaml:"density_mb,omitempty"`
	DQBits       *int   `yaml:"dq_bits,omitempty"`
	ChannelWidth *int   `yaml:"channel_width,omitempty"`
	Channel      *int   `yaml:"channel,omitempty"`
	Rank         *int   `yaml:"rank,omitempty"`
	BankGroup    *int   `yaml:"bankgroup,omitempty"`
	Bank         *int   `yaml:"bank,omitempty"`
	Row          *int   `yaml:"row,omitempty"`
	Column       *int   `yaml:"column,omitempty"`
}

// Timing mirrors dram.TimingOverrides in YAML-tagged form. Cycle and
// nanosecond overrides are keyed by the same timing names
// dram.TimingByName resolves (e.g. "nRCDR", "tRCDR").
type Timing struct {
	Preset  string             `yaml:"preset"`
	Rate    *int               `yaml:"rate,omitempty"`
	Cycles  map[string]int     `yaml:"cycles,omitempty"`
	Ns      map[string]float64 `yaml:"ns,omitempty"`
}

// Adapter carries the controller adapter's tunables.
type Adapter struct {
	Capacity    int    `yaml:"capacity"`
	LogInterval int    `yaml:"log_interval"`
	LogLevel    string `yaml:"log_level"`
}

// DRAM is the `dram:` section of the configuration tree, nested under
// `memory_system:`.
type DRAM struct {
	Organization Organization `yaml:"organization"`
	Timing       Timing       `yaml:"timing"`
	Adapter      Adapter      `yaml:"adapter"`
}

// MemorySystem is the full document shape, rooted under `memory_system:`.
type MemorySystem struct {
	DRAM DRAM `yaml:"dram"`
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (*MemorySystem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var doc struct {
		MemorySystem MemorySystem `yaml:"memory_system"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &doc.MemorySystem, nil
}

// OrgOverrides converts the YAML organization section to dram.OrgOverrides.
func (o Organization) OrgOverrides() dram.OrgOverrides {
	return dram.OrgOverrides{
		Preset:       o.Preset,
		DensityMb:    o.DensityMb,
		DQBits:       o.DQBits,
		ChannelWidth: o.ChannelWidth,
		Channel:      o.Channel,
		Rank:         o.Rank,
		BankGroup:    o.BankGroup,
		Bank:         o.Bank,
		Row:          o.Row,
		Column:       o.Column,
	}
}

// TimingOverrides converts the YAML timing section to dram.TimingOverrides,
// resolving each named key through dram.TimingByName.
func (t Timing) TimingOverrides() (dram.TimingOverrides, error) {
	overrides := dram.TimingOverrides{
		Preset: t.Preset,
		Rate:   t.Rate,
	}

	if len(t.Cycles) > 0 {
		overrides.CycleOverrides = map[dram.Timing]int{}

		for name, v := range t.Cycles {
			idx, ok := dram.TimingByName(name)
			if !ok {
				return dram.TimingOverrides{}, fmt.Errorf("config: unrecognized timing name %q", name)
			}

			overrides.CycleOverrides[idx] = v
		}
	}

	if len(t.Ns) > 0 {
		overrides.NsOverrides = map[dram.Timing]float64{}

		for name, v := range t.Ns {
			idx, ok := dram.TimingByName(name)
			if !ok {
				return dram.TimingOverrides{}, fmt.Errorf("config: unrecognized timing name %q", name)
			}

			overrides.NsOverrides[idx] = v
		}
	}

	return overrides, nil
}

// BuildDevice resolves a dram.Device from the DRAM section's organization
// and timing overrides.
func (d DRAM) BuildDevice() (*dram.Device, error) {
	timingOverrides, err := d.Timing.TimingOverrides()
	if err != nil {
		return nil, err
	}

	b := dram.MakeBuilder()
	b = applyOrgOverrides(b, d.Organization.OrgOverrides())
	b = applyTimingOverrides(b, timingOverrides)

	return b.Build()
}

func applyOrgOverrides(b dram.Builder, o dram.OrgOverrides) dram.Builder {
	if o.Preset != "" {
		b = b.WithOrgPreset(o.Preset)
	}

	if o.DensityMb != nil {
		b = b.WithDensityMb(*o.DensityMb)
	}

	if o.DQBits != nil {
		b = b.WithDQBits(*o.DQBits)
	}

	if o.ChannelWidth != nil {
		b = b.WithChannelWidth(*o.ChannelWidth)
	}

	if o.Channel != nil {
		b = b.WithChannelCount(*o.Channel)
	}

	if o.Rank != nil {
		b = b.WithRankCount(*o.Rank)
	}

	if o.BankGroup != nil {
		b = b.WithBankGroupCount(*o.BankGroup)
	}

	if o.Bank != nil {
		b = b.WithBankCount(*o.Bank)
	}

	if o.Row != nil {
		b = b.WithRowCount(*o.Row)
	}

	if o.Column != nil {
		b = b.WithColumnCount(*o.Column)
	}

	return b
}

func applyTimingOverrides(b dram.Builder, t dram.TimingOverrides) dram.Builder {
	if t.Preset != "" {
		b = b.WithTimingPreset(t.Preset)
	}

	if t.Rate != nil {
		b = b.WithRate(*t.Rate)
	}

	for name, v := range t.CycleOverrides {
		b = b.WithTimingCycles(name, v)
	}

	for name, v := range t.NsOverrides {
		b = b.WithTimingNs(name, v)
	}

	return b
}
