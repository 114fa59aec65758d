package rowbuffer

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

func TestHitFalseOnClosedBank(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Row: 5}
	assert.False(t, Hit(tr, a))
	assert.False(t, Open(tr, a))
}

func TestHitFalseOnPreOpenedBank(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Row: 5}

	bank := tr.Bank(a)
	bank.State = dict.StatePreOpened
	bank.RowState[5] = dict.StatePreOpened

	assert.False(t, Hit(tr, a))
	assert.False(t, Open(tr, a))
}

func TestHitTrueOnOpenedMatchingRow(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Row: 5}

	bank := tr.Bank(a)
	bank.State = dict.StateOpened
	bank.RowState[5] = dict.StateOpened

	assert.True(t, Hit(tr, a))
	assert.True(t, Open(tr, a))
}

func TestHitFalseOnOpenedDifferentRow(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Row: 5}

	bank := tr.Bank(a)
	bank.State = dict.StateOpened
	bank.RowState[6] = dict.StateOpened

	assert.False(t, Hit(tr, a))
	assert.True(t, Open(tr, a), "a different row being open still means the bank is open")
}

func TestInvalidBankStatePanics(t *testing.T) {
	tr := testTree(t)
	a := node.Addr{Row: 5}
	tr.Bank(a).State = dict.StatePowerUp

	assert.Panics(t, func() { Hit(tr, a) })
	assert.Panics(t, func() { Open(tr, a) })
}
