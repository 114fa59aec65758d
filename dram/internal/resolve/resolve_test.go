package resolve

import (
	"testing"

	"github.com/Helios113/ramulator2/dram/internal/catalog"
	"github.com/Helios113/ramulator2/dram/internal/dict"
	"github.com/Helios113/ramulator2/dram/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) *node.Tree {
	t.Helper()

	org, err := catalog.LoadOrganization(catalog.OrgOverrides{Preset: "LPDDR5X_8Gb_x16"})
	require.NoError(t, err)

	return node.NewTree(org)
}

func TestPreqColdReadRequiresActivateSequence(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0, Row: 5}

	assert.Equal(t, dict.CmdACT1, Preq(tr, dict.CmdRD32, a, 0))

	Act(tr, dict.CmdACT1, a, 0, CASTiming{})
	assert.Equal(t, dict.CmdACT2, Preq(tr, dict.CmdRD32, a, 0))

	Act(tr, dict.CmdACT2, a, 0, CASTiming{})
	assert.Equal(t, dict.CmdCASRD, Preq(tr, dict.CmdRD32, a, 0))
}

func TestPreqOpenedRowMissRequiresPrecharge(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0, Row: 5}

	Act(tr, dict.CmdACT1, a, 0, CASTiming{})
	Act(tr, dict.CmdACT2, a, 0, CASTiming{})

	otherRow := a
	otherRow.Row = 6
	assert.Equal(t, dict.CmdPRE, Preq(tr, dict.CmdRD32, otherRow, 0))
}

func TestPreqRowHitWithinSyncWindowReturnsCmdUnchanged(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0, Row: 5}

	Act(tr, dict.CmdACT1, a, 0, CASTiming{})
	Act(tr, dict.CmdACT2, a, 0, CASTiming{})
	Act(tr, dict.CmdCASRD, a, 0, CASTiming{NCL: 26, NBL32: 2})

	assert.Equal(t, dict.CmdRD32, Preq(tr, dict.CmdRD32, a, 5))
}

func TestPreqPerBankRefreshPairing(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 2}

	assert.Equal(t, dict.CmdREFpb, Preq(tr, dict.CmdREFpb, a, 0))

	partner, partnerAddr := tr.BankByFlatID(a, tr.FlatBankID(a)+8)
	partner.State = dict.StatePreOpened
	_ = partnerAddr

	assert.Equal(t, dict.CmdPRE, Preq(tr, dict.CmdREFpb, a, 0))
}

func TestPreqRequireAllBanksClosedForRefab(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0}

	assert.Equal(t, dict.CmdREFab, Preq(tr, dict.CmdREFab, a, 0))

	tr.Bank(a).State = dict.StateOpened
	assert.Equal(t, dict.CmdPREA, Preq(tr, dict.CmdREFab, a, 0))
}

func TestActPREAClosesEveryBankInRank(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0, Row: 5}

	Act(tr, dict.CmdACT1, a, 0, CASTiming{})
	Act(tr, dict.CmdACT2, a, 0, CASTiming{})
	require.Equal(t, dict.StateOpened, tr.Bank(a).State)

	Act(tr, dict.CmdPREA, a, 10, CASTiming{})

	for _, b := range tr.AllBanksInRank(a) {
		assert.Equal(t, dict.StateClosed, b.State)
		assert.Empty(t, b.RowState)
	}
}

func TestActCASSetsFinalSyncedCycle(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Channel: 0, Rank: 0, BankGroup: 0, Bank: 0, Row: 5}

	Act(tr, dict.CmdCASRD, a, 100, CASTiming{NCL: 26, NBL32: 2})
	assert.Equal(t, node.Clk(100+26+2+1), tr.Rank(a).FinalSyncedCycle)

	Act(tr, dict.CmdCASWR, a, 200, CASTiming{NCWL: 12, NBL32: 2})
	assert.Equal(t, node.Clk(200+12+2+1), tr.Rank(a).FinalSyncedCycle)
}
