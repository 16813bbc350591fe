package hfsmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAndCheck(t *testing.T, spec Spec) *Index {
	t.Helper()
	idx, err := buildIndex(spec)
	require.NoError(t, err)
	require.NoError(t, checkIntegrity(spec, idx))
	return idx
}

// S1 - Single-state FSM.
func TestScenarioS1(t *testing.T) {
	spec := s1Spec()
	idx := buildAndCheck(t, spec)

	assert.Equal(t, []string{"/A"}, idx.SortedPointers())

	initial, err := initialOf(idx, "/A")
	require.NoError(t, err)
	assert.Equal(t, "/A", initial)

	steps, err := planInitial(idx, spec.Initial())
	require.NoError(t, err)
	assert.Equal(t, []Step{
		stateStep("/A"),
		actionsStep(nil),
	}, steps)
}

// S2 - Deep initial chain.
func TestScenarioS2(t *testing.T) {
	spec := s2Spec()
	idx := buildAndCheck(t, spec)

	initial, err := initialOf(idx, "/A")
	require.NoError(t, err)
	assert.Equal(t, "/A/B/D", initial)

	steps, err := planInitial(idx, spec.Initial())
	require.NoError(t, err)
	assert.Equal(t, []Step{
		stateStep("/A"),
		actionsStep([]string{"foo"}),
		stateStep("/A/B"),
		actionsStep(nil),
		stateStep("/A/B/D"),
		actionsStep([]string{"bar"}),
	}, steps)
}

// S3 - Internal transition, inherited by a child state.
func TestScenarioS3(t *testing.T) {
	b := &memState{name: "B"}
	a := &memState{
		name:     "A",
		initial:  "B",
		children: []StateSpec{b},
		transitions: []TransitionSpec{
			&memTransition{event: "X", cond: "corge", polarity: PolarityTruthy, actions: []string{"grault"}},
		},
	}
	spec := &memSpec{initial: "A", states: []StateSpec{a}}
	idx := buildAndCheck(t, spec)

	want := []Alternative{{
		Condition: "corge",
		Polarity:  PolarityTruthy,
		Steps:     []Step{actionsStep([]string{"grault"})},
	}}

	got, err := planTransitions(idx, "X", "/A")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = planTransitions(idx, "X", "/A/B")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// S4 - External transition whose LCA is the root.
func TestScenarioS4(t *testing.T) {
	b := &memState{name: "B"}
	c := &memState{name: "C"}
	a := &memState{
		name:     "A",
		initial:  "B",
		children: []StateSpec{b},
		transitions: []TransitionSpec{
			&memTransition{event: "X", cond: "corge", polarity: PolarityFalsy, actions: []string{"grault"}, next: "C"},
		},
	}
	spec := &memSpec{initial: "A", states: []StateSpec{a, c}}
	idx := buildAndCheck(t, spec)

	got, err := planTransitions(idx, "X", "/A/B")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []Step{
		actionsStep(nil), stateStep("/A/B"),
		actionsStep(nil), stateStep("/A"),
		actionsStep([]string{"grault"}),
		stateStep("/C"), actionsStep(nil),
	}, got[0].Steps)
}

// S5 - Sibling short-circuit: ancestor transitions on the same event are
// ignored once an unconditional match is found in the nearer state.
func TestScenarioS5(t *testing.T) {
	c := &memState{name: "C"}
	d := &memState{name: "D"}
	b := &memState{
		name: "B",
		transitions: []TransitionSpec{
			&memTransition{event: "X", cond: "corge", polarity: PolarityTruthy, next: "C"},
			&memTransition{event: "X", next: "../D"}, // equivalent sibling target, spelled relatively
		},
	}
	a := &memState{
		name:     "A",
		initial:  "B",
		children: []StateSpec{b, c, d},
		transitions: []TransitionSpec{
			&memTransition{event: "X", next: "final"}, // ancestor transition, must be ignored
		},
	}
	spec := &memSpec{initial: "A", states: []StateSpec{a}}
	idx := buildAndCheck(t, spec)

	got, err := planTransitions(idx, "X", "/A/B")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "corge", got[0].Condition)
	assert.Equal(t, PolarityTruthy, got[0].Polarity)
	assert.Equal(t, PolarityNone, got[1].Polarity)
}

// S6 - Final transition inherited from an ancestor, terminating the FSM.
func TestScenarioS6(t *testing.T) {
	b := &memState{name: "B"}
	a := &memState{
		name:     "A",
		initial:  "B",
		children: []StateSpec{b},
		transitions: []TransitionSpec{
			&memTransition{event: "Y", next: "final", actions: []string{"quux"}},
		},
	}
	spec := &memSpec{initial: "A", states: []StateSpec{a}}
	idx := buildAndCheck(t, spec)

	got, err := planTransitions(idx, "Y", "/A/B")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []Step{
		actionsStep(nil), stateStep("/A/B"),
		actionsStep(nil), stateStep("/A"),
		terminalStateStep(),
		actionsStep([]string{"quux"}),
	}, got[0].Steps)
}

func TestUnconditionalShortCircuit(t *testing.T) {
	b := &memState{
		name: "B",
		transitions: []TransitionSpec{
			&memTransition{event: "X", cond: "c1", polarity: PolarityTruthy, next: "final"},
			&memTransition{event: "X", next: "final"},
			&memTransition{event: "X", cond: "c2", polarity: PolarityTruthy, next: "final"},
		},
	}
	spec := &memSpec{initial: "B", states: []StateSpec{b}}
	idx := buildAndCheck(t, spec)

	got, err := planTransitions(idx, "X", "/B")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].Condition)
	assert.Equal(t, PolarityNone, got[1].Polarity)
}

func TestInitialOfIdempotentAndLeaf(t *testing.T) {
	idx := buildAndCheck(t, s2Spec())
	for _, p := range []string{"/A", "/A/B", "/A/B/D"} {
		first, err := initialOf(idx, p)
		require.NoError(t, err)
		second, err := initialOf(idx, first)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		entry := idx.get(first)
		assert.Equal(t, "", entry.spec.Initial())
	}
}

func TestInitialOfRejectsUnindexedPointer(t *testing.T) {
	idx := buildAndCheck(t, s1Spec())
	_, err := initialOf(idx, "/Nowhere")
	require.Error(t, err)
	var bad *BadPointer
	require.ErrorAs(t, err, &bad)
}

func TestInternalTransitionNeutrality(t *testing.T) {
	a := &memState{
		name: "A",
		transitions: []TransitionSpec{
			&memTransition{event: "X", actions: []string{"a1", "a2"}},
		},
	}
	spec := &memSpec{initial: "A", states: []StateSpec{a}}
	idx := buildAndCheck(t, spec)

	got, err := planTransitions(idx, "X", "/A")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Steps, 1)
	assert.Equal(t, ActionsStep, got[0].Steps[0].Kind)
	assert.Equal(t, []string{"a1", "a2"}, got[0].Steps[0].Actions)
}
