package node

import (
	"testing"

	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrg(t *testing.T) catalog.Organization {
	t.Helper()

	org, err := catalog.LoadOrganization(catalog.OrgOverrides{Preset: "LPDDR5X_8Gb_x16"})
	require.NoError(t, err)

	return org
}

func TestNewTreeShape(t *testing.T) {
	tr := NewTree(testOrg(t))

	require.Len(t, tr.Channels, 1)
	require.Len(t, tr.Channels[0].Ranks, 1)
	require.Len(t, tr.Channels[0].Ranks[0].BankGroups, 4)
	require.Len(t, tr.Channels[0].Ranks[0].BankGroups[0].Banks, 4)
}

func TestNewTreeInitialState(t *testing.T) {
	tr := NewTree(testOrg(t))

	a := Addr{Channel: 0, Rank: 0, BankGroup: 1, Bank: 2}
	bank := tr.Bank(a)
	assert.Equal(t, dict.LevelBank.InitState(), bank.State)
	assert.NotNil(t, bank.RowState)
	assert.Empty(t, bank.RowState)

	rank := tr.Rank(a)
	assert.Equal(t, dict.LevelRank.InitState(), rank.State)
}

func TestReadinessRaiseNeverLowers(t *testing.T) {
	var r Readiness
	r.Raise(dict.CmdACT1, 10)
	assert.Equal(t, Clk(10), r.EarliestAllowed(dict.CmdACT1))

	r.Raise(dict.CmdACT1, 5)
	assert.Equal(t, Clk(10), r.EarliestAllowed(dict.CmdACT1), "a looser constraint must not lower the bar")

	r.Raise(dict.CmdACT1, 20)
	assert.Equal(t, Clk(20), r.EarliestAllowed(dict.CmdACT1))
}

func TestReadinessHistoryRing(t *testing.T) {
	var r Readiness
	for i := Clk(1); i <= Clk(historyDepth+3); i++ {
		r.RecordIssue(dict.CmdACT1, i)
	}

	most, ok := r.NthMostRecent(dict.CmdACT1, 1)
	require.True(t, ok)
	assert.Equal(t, Clk(historyDepth+3), most)

	fourth, ok := r.NthMostRecent(dict.CmdACT1, 4)
	require.True(t, ok)
	assert.Equal(t, Clk(historyDepth), fourth)

	_, ok = r.NthMostRecent(dict.CmdACT1, historyDepth+1)
	assert.False(t, ok)
}

func TestSiblingLookups(t *testing.T) {
	tr := NewTree(testOrg(t))
	a := Addr{Channel: 0, Rank: 0, BankGroup: 1, Bank: 2}

	others := tr.OtherBanksInBankGroup(a)
	assert.Len(t, others, 3)

	all := tr.AllBanksInRank(a)
	assert.Len(t, all, 16)
}

func TestFlatBankIDRoundTrip(t *testing.T) {
	tr := NewTree(testOrg(t))
	a := Addr{Channel: 0, Rank: 0, BankGroup: 2, Bank: 3}

	flat := tr.FlatBankID(a)
	_, got := tr.BankByFlatID(a, flat)
	assert.Equal(t, a.BankGroup, got.BankGroup)
	assert.Equal(t, a.Bank, got.Bank)
}
