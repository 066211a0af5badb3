package pipeline

import (
	"fmt"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// next is the single legal forward transition from each state. A unit can
// only move one step at a time; Failed is reachable from any non-terminal
// state through Fail.
var next = map[types.UnitState]types.UnitState{
	types.StatePending:        types.StateSynthesized,
	types.StateSynthesized:    types.StateScheduled,
	types.StateScheduled:      types.StateHeaderRendered,
	types.StateHeaderRendered: types.StateComposited,
	types.StateComposited:     types.StateDone,
}

// Machine tracks one content unit through the pipeline and rejects illegal
// transitions.
type Machine struct {
	state types.UnitState
}

// NewMachine starts a unit in Pending.
func NewMachine() *Machine {
	return &Machine{state: types.StatePending}
}

// State returns the current state.
func (m *Machine) State() types.UnitState { return m.state }

// Advance moves the unit to target, which must be the one legal successor
// of the current state.
func (m *Machine) Advance(target types.UnitState) error {
	want, ok := next[m.state]
	if !ok {
		return fmt.Errorf("unit is terminal in state %q", m.state)
	}
	if target != want {
		return fmt.Errorf("illegal transition %q -> %q (want %q)", m.state, target, want)
	}
	m.state = target
	return nil
}

// Fail moves the unit to Failed from any non-terminal state.
func (m *Machine) Fail() error {
	if m.state == types.StateDone || m.state == types.StateFailed {
		return fmt.Errorf("unit is terminal in state %q", m.state)
	}
	m.state = types.StateFailed
	return nil
}
