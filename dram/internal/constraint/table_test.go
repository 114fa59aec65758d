package constraint

import (
	"testing"

	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTimings(t *testing.T) catalog.Timings {
	t.Helper()

	org, err := catalog.LoadOrganization(catalog.OrgOverrides{Preset: "LPDDR5X_8Gb_x16"})
	require.NoError(t, err)

	tv, err := catalog.LoadTiming(catalog.TimingOverrides{Preset: "LPDDR5X_8533"}, org)
	require.NoError(t, err)

	return tv
}

func TestActToActSameBankRequiresNRC(t *testing.T) {
	tv := testTimings(t)
	tbl := Build(tv)
	tr := node.NewTree(mustOrg(t))

	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0}

	assert.True(t, tbl.Ready(tr, dict.CmdACT1, a, 0))
	tbl.Apply(tr, dict.CmdACT1, a, 0)

	assert.False(t, tbl.Ready(tr, dict.CmdACT1, a, node.Clk(tv[catalog.TnRC]-1)))
	assert.True(t, tbl.Ready(tr, dict.CmdACT1, a, node.Clk(tv[catalog.TnRC])))
}

func TestActToRdRequiresNRCDR(t *testing.T) {
	tv := testTimings(t)
	tbl := Build(tv)
	tr := node.NewTree(mustOrg(t))

	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0}
	tbl.Apply(tr, dict.CmdACT1, a, 0)

	assert.False(t, tbl.Ready(tr, dict.CmdRD32, a, node.Clk(tv[catalog.TnRCDR]-1)))
	assert.True(t, tbl.Ready(tr, dict.CmdRD32, a, node.Clk(tv[catalog.TnRCDR])))
}

func TestFourActivateWindowEnforcesNFAW(t *testing.T) {
	tv := testTimings(t)
	tbl := Build(tv)
	tr := node.NewTree(mustOrg(t))

	addrs := []node.Addr{
		{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0},
		{Channel: 0, Rank: 0, BankGroup: 1, Bank: 0},
		{Channel: 0, Rank: 0, BankGroup: 2, Bank: 0},
		{Channel: 0, Rank: 0, BankGroup: 3, Bank: 0},
	}

	clk := node.Clk(0)
	for _, a := range addrs {
		tbl.Apply(tr, dict.CmdACT1, a, clk)
		clk += node.Clk(tv[catalog.TnRRD])
	}

	fifth := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 1}
	// At most four ACT-1s fit in one nFAW window: the 5th ACT-1 in the rank
	// must respect nFAW measured from the 1st.
	assert.False(t, tbl.Ready(tr, dict.CmdACT1, fifth, node.Clk(tv[catalog.TnFAW]-1)))
	assert.True(t, tbl.Ready(tr, dict.CmdACT1, fifth, node.Clk(tv[catalog.TnFAW])))
}

func TestSiblingRankConstraintAppliesToOtherRanksOnly(t *testing.T) {
	tv := testTimings(t)
	tbl := Build(tv)

	org := mustOrg(t)
	org.Count[dict.LevelRank] = 2
	tr := node.NewTree(org)

	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0}
	tbl.Apply(tr, dict.CmdRD32, a, 10)

	other := node.Addr{Channel: 0, Rank: 1, BankGroup: 0, Bank: 0}
	due := 10 + tv[catalog.TnBL32] + tv[catalog.TnCS]
	// A WR32 on the other rank is bounded only by the cross-rank record; a
	// RD32 there would also wait on the shared channel's data bus.
	assert.False(t, tbl.Ready(tr, dict.CmdWR32, other, node.Clk(due-1)))
	assert.True(t, tbl.Ready(tr, dict.CmdWR32, other, node.Clk(due)))

	// The issuing rank itself is not a sibling of itself: its own RD32 bar
	// comes from the same-rank nCCD record alone.
	assert.Equal(t, node.Clk(10+tv[catalog.TnCCD]), tr.Rank(a).EarliestAllowed(dict.CmdRD32))
}

func TestChannelBackToBackReadRespectsBlockedGateNotFlatSum(t *testing.T) {
	tv := testTimings(t)
	tbl := Build(tv)
	tr := node.NewTree(mustOrg(t))

	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0}
	// A different bankgroup, so the same-bankgroup 4*nCCD spacing does not
	// mask the channel-level bound.
	next := node.Addr{Channel: 0, Rank: 0, BankGroup: 1, Bank: 0}
	nBL32 := tv[catalog.TnBL32]

	tbl.Apply(tr, dict.CmdRD32, a, 0)

	// The baseline record alone would allow the next same-direction CAS at
	// nBL32; the blocked-gated record (Latency: 3*nBL32, Blocked: 2*nBL32)
	// tightens that to 3*nBL32, since the baseline-raised bound still falls
	// inside the exclusion zone [0, 2*nBL32). It must not additionally sum
	// Blocked onto Latency to produce a flat 5*nBL32.
	assert.False(t, tbl.Ready(tr, dict.CmdRD32, next, node.Clk(3*nBL32-1)))
	assert.True(t, tbl.Ready(tr, dict.CmdRD32, next, node.Clk(3*nBL32)))
}

func mustOrg(t *testing.T) catalog.Organization {
	t.Helper()

	org, err := catalog.LoadOrganization(catalog.OrgOverrides{Preset: "LPDDR5X_8Gb_x16"})
	require.NoError(t, err)

	return org
}
