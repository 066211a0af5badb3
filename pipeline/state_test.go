package pipeline

import (
	"testing"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()
	order := []types.UnitState{
		types.StateSynthesized,
		types.StateScheduled,
		types.StateHeaderRendered,
		types.StateComposited,
		types.StateDone,
	}
	for _, s := range order {
		if err := m.Advance(s); err != nil {
			t.Fatalf("Advance(%q) failed: %v", s, err)
		}
		if m.State() != s {
			t.Fatalf("state = %q, want %q", m.State(), s)
		}
	}
}

func TestMachineRejectsSkips(t *testing.T) {
	m := NewMachine()
	if err := m.Advance(types.StateScheduled); err == nil {
		t.Error("skipping synthesis was allowed")
	}
	if m.State() != types.StatePending {
		t.Errorf("state changed on rejected transition: %q", m.State())
	}

	if err := m.Advance(types.StateSynthesized); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if err := m.Advance(types.StateSynthesized); err == nil {
		t.Error("repeating a state was allowed")
	}
	if err := m.Advance(types.StateDone); err == nil {
		t.Error("jumping to done was allowed")
	}
}

func TestMachineFail(t *testing.T) {
	m := NewMachine()
	if err := m.Fail(); err != nil {
		t.Fatalf("Fail from pending rejected: %v", err)
	}
	if m.State() != types.StateFailed {
		t.Errorf("state = %q, want failed", m.State())
	}

	if err := m.Fail(); err == nil {
		t.Error("Fail from failed was allowed")
	}
	if err := m.Advance(types.StateSynthesized); err == nil {
		t.Error("advancing out of failed was allowed")
	}
}

func TestMachineDoneIsTerminal(t *testing.T) {
	m := NewMachine()
	for _, s := range []types.UnitState{
		types.StateSynthesized,
		types.StateScheduled,
		types.StateHeaderRendered,
		types.StateComposited,
		types.StateDone,
	} {
		if err := m.Advance(s); err != nil {
			t.Fatalf("Advance(%q) failed: %v", s, err)
		}
	}
	if err := m.Fail(); err == nil {
		t.Error("Fail from done was allowed")
	}
}
