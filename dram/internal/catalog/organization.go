// Package catalog holds the named presets for device organization and
// timing, and the preset+override merge logic that produces a validated
// Organization and Timing vector for the engine to build its node tree
// and constraint table from.
package catalog

import (
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/errs"
)

// Organization describes the device density and the fan-out at every level
// of the channel->rank->bankgroup->bank->row->column hierarchy.
type Organization struct {
	DensityMb    int
	DQBits       int
	ChannelWidth int
	Count        [dict.NumLevels]int
}

// OrgPreset is a named, fully-specified Organization.
type OrgPreset struct {
	Name         string
	DensityMb    int
	DQBits       int
	ChannelWidth int
	Count        [dict.NumLevels]int
}

// OrgOverrides carries the optional per-field overrides accepted by
// LoadOrganization, mirroring the `org` section of the configuration tree.
type OrgOverrides struct {
	Preset       string
	DensityMb    *int
	DQBits       *int
	ChannelWidth *int
	Channel      *int
	Rank         *int
	BankGroup    *int
	Bank         *int
	Row          *int
	Column       *int
}

// orgPresets is the compile-time table of LPDDR5X_*Gb_x16 organization
// presets, taken verbatim from the Ramulator2 LPDDR5X device model: one
// channel, one rank, 4 bank groups of 4 banks, 16-bit data width, and a
// row count that scales with density.
var orgPresets = map[string]OrgPreset{
	"LPDDR5X_2Gb_x16": {
		Name: "LPDDR5X_2Gb_x16", DensityMb: 2 << 10, DQBits: 16,
		Count: countVec(1, 1, 4, 4, 1<<13, 1<<10),
	},
	"LPDDR5X_4Gb_x16": {
		Name: "LPDDR5X_4Gb_x16", DensityMb: 4 << 10, DQBits: 16,
		Count: countVec(1, 1, 4, 4, 1<<14, 1<<10),
	},
	"LPDDR5X_8Gb_x16": {
		Name: "LPDDR5X_8Gb_x16", DensityMb: 8 << 10, DQBits: 16,
		Count: countVec(1, 1, 4, 4, 1<<15, 1<<10),
	},
	"LPDDR5X_16Gb_x16": {
		Name: "LPDDR5X_16Gb_x16", DensityMb: 16 << 10, DQBits: 16,
		Count: countVec(1, 1, 4, 4, 1<<16, 1<<10),
	},
	"LPDDR5X_32Gb_x16": {
		Name: "LPDDR5X_32Gb_x16", DensityMb: 32 << 10, DQBits: 16,
		Count: countVec(1, 1, 4, 4, 1<<17, 1<<10),
	},
}

func countVec(channel, rank, bankgroup, bank, row, column int) [dict.NumLevels]int {
	var c [dict.NumLevels]int
	c[dict.LevelChannel] = channel
	c[dict.LevelRank] = rank
	c[dict.LevelBankGroup] = bankgroup
	c[dict.LevelBank] = bank
	c[dict.LevelRow] = row
	c[dict.LevelColumn] = column

	return c
}

// LoadOrganization resolves an Organization from an optional preset name
// plus overrides, validating the result against the density invariant.
//
// The merge is strict: a named preset that is not in orgPresets is a
// ConfigurationError, as is any level count left at -1 once merging is
// done, as is a final density that disagrees with the one computed from
// the per-level counts and DQ width.
func LoadOrganization(o OrgOverrides) (Organization, error) {
	var org Organization
	for i := range org.Count {
		org.Count[i] = -1
	}

	org.ChannelWidth = 16

	if o.Preset != "" {
		preset, ok := orgPresets[o.Preset]
		if !ok {
			return Organization{}, errs.NewConfigurationError(
				"unrecognized organization preset %q", o.Preset)
		}

		org.DensityMb = preset.DensityMb
		org.DQBits = preset.DQBits
		org.Count = preset.Count
	}

	if o.DQBits != nil {
		org.DQBits = *o.DQBits
	}

	applyLevelOverride(&org.Count[dict.LevelChannel], o.Channel)
	applyLevelOverride(&org.Count[dict.LevelRank], o.Rank)
	applyLevelOverride(&org.Count[dict.LevelBankGroup], o.BankGroup)
	applyLevelOverride(&org.Count[dict.LevelBank], o.Bank)
	applyLevelOverride(&org.Count[dict.LevelRow], o.Row)
	applyLevelOverride(&org.Count[dict.LevelColumn], o.Column)

	if o.DensityMb != nil {
		org.DensityMb = *o.DensityMb
	}

	if o.ChannelWidth != nil {
		org.ChannelWidth = *o.ChannelWidth
	}

	for i, n := range org.Count {
		if n == -1 {
			return Organization{}, errs.NewConfigurationError(
				"organization level %q was never set", dict.Level(i))
		}
	}

	if err := org.validateDensity(); err != nil {
		return Organization{}, err
	}

	return org, nil
}

func applyLevelOverride(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// validateDensity checks invariant #1: density_Mb == (bankgroup * bank *
// row * column * dq) >> 20.
func (o Organization) validateDensity() error {
	computed := o.Count[dict.LevelBankGroup] *
		o.Count[dict.LevelBank] *
		o.Count[dict.LevelRow] *
		o.Count[dict.LevelColumn] *
		o.DQBits
	computed >>= 20

	if computed != o.DensityMb {
		return errs.NewConfigurationError(
			"calculated chip density %d Mb does not equal the provided density %d Mb",
			computed, o.DensityMb)
	}

	return nil
}
