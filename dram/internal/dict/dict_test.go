package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRoundTrip(t *testing.T) {
	for i := 0; i < NumLevels; i++ {
		level := Level(i)
		got, ok := LevelByName(level.String())
		require.True(t, ok)
		assert.Equal(t, level, got)
	}

	_, ok := LevelByName("nonsense")
	assert.False(t, ok)
}

func TestCommandRoundTrip(t *testing.T) {
	for i := 0; i < NumCommands; i++ {
		cmd := Command(i)
		got, ok := CommandByName(cmd.String())
		require.True(t, ok)
		assert.Equal(t, cmd, got)
	}
}

func TestCommandScopeAndMeta(t *testing.T) {
	assert.Equal(t, LevelRow, CmdACT1.Scope())
	assert.Equal(t, LevelRow, CmdACT2.Scope())
	assert.True(t, CmdACT2.Meta().OpensRow)

	assert.Equal(t, LevelBank, CmdPRE.Scope())
	assert.True(t, CmdPRE.Meta().ClosesRow)

	assert.Equal(t, LevelRank, CmdPREA.Scope())
	assert.True(t, CmdPREA.Meta().ClosesRow)

	assert.Equal(t, LevelColumn, CmdRD32.Scope())
	assert.True(t, CmdRD32.Meta().AccessesData)
	assert.False(t, CmdRD32.Meta().ClosesRow)

	assert.True(t, CmdRD32A.Meta().ClosesRow)
	assert.True(t, CmdRD32A.Meta().AccessesData)

	assert.True(t, CmdREFab.Meta().IsRefresh)
	assert.True(t, CmdREFpb.Meta().IsRefresh)
	assert.True(t, CmdRFMab.Meta().IsRefresh)
	assert.True(t, CmdRFMpb.Meta().IsRefresh)
}

func TestInitStates(t *testing.T) {
	assert.Equal(t, StateNA, LevelChannel.InitState())
	assert.Equal(t, StatePowerUp, LevelRank.InitState())
	assert.Equal(t, StateNA, LevelBankGroup.InitState())
	assert.Equal(t, StateClosed, LevelBank.InitState())
	assert.Equal(t, StateClosed, LevelRow.InitState())
	assert.Equal(t, StateNA, LevelColumn.InitState())
}

func TestRequestTranslation(t *testing.T) {
	assert.Equal(t, CmdRD32, ReqRead16.Command())
	assert.Equal(t, CmdWR32, ReqWrite16.Command())
	assert.Equal(t, CmdREFab, ReqAllBankRefresh.Command())
	assert.Equal(t, CmdREFpb, ReqPerBankRefresh.Command())
}
