package dict

// State is the node state in the hierarchical state machine.
type State int

// The node states, shared across all levels.
const (
	StatePreOpened State = iota
	StateOpened
	StateClosed
	StatePowerUp
	StateNA

	numStates
)

// NumStates is the number of known states.
const NumStates = int(numStates)

var stateNames = [numStates]string{
	StatePreOpened: "Pre-Opened",
	StateOpened:    "Opened",
	StateClosed:    "Closed",
	StatePowerUp:   "PowerUp",
	StateNA:        "N/A",
}

// String returns the configuration name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= NumStates {
		return "unknown-state"
	}

	return stateNames[s]
}

// initState is the state a node at a given level is created with.
var initState = [numLevels]State{
	LevelChannel:   StateNA,
	LevelRank:      StatePowerUp,
	LevelBankGroup: StateNA,
	LevelBank:      StateClosed,
	LevelRow:       StateClosed,
	LevelColumn:    StateNA,
}

// InitState returns the initial state of a freshly created node at level.
func (l Level) InitState() State {
	return initState[l]
}
