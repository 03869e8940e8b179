package history_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const actionIncrement = "INCREMENT"

type counter struct{ n int }

// counterTransition starts at 0 and returns its input unless incremented.
func counterTransition(state *counter, action domain.Action) *counter {
	if state == nil {
		state = &counter{}
	}
	if action.Type == actionIncrement {
		return &counter{n: state.n + 1}
	}
	return state
}

func intTransition(state int, action domain.Action) int {
	if action.Type == actionIncrement {
		return state + 1
	}
	return state
}

func TestWrap_CounterScenario(t *testing.T) {
	reduce := history.Wrap(intTransition)

	initial := reduce(nil, domain.Action{})
	assert.Equal(t, 0, initial.Present())
	assert.Same(t, initial, reduce(initial, domain.Action{}), "no-op must return the same envelope")

	state := reduce(initial, domain.Action{Type: actionIncrement})
	assert.Equal(t, []int{0}, state.Past())
	assert.Equal(t, 1, state.Present())
	assert.Empty(t, state.Future())

	state = reduce(state, domain.Action{Type: domain.ActionUndo})
	assert.Empty(t, state.Past())
	assert.Equal(t, 0, state.Present())
	assert.Equal(t, []int{1}, state.Future())

	again := reduce(state, domain.Action{Type: domain.ActionUndo})
	assert.Same(t, state, again, "undo with empty past is a no-op")
}

func TestWrap_RedoWithEmptyFutureIsNoop(t *testing.T) {
	reduce := history.Wrap(intTransition)
	state := reduce(nil, domain.Action{Type: actionIncrement})
	assert.Same(t, state, reduce(state, domain.Action{Type: domain.ActionRedo}))
}

func TestWrap_NilEnvelopeIsInitial(t *testing.T) {
	reduce := history.Wrap(counterTransition)
	a := reduce(nil, domain.Action{})
	b := reduce(nil, domain.Action{Type: "UNKNOWN"})
	assert.Same(t, a, b)
}

func TestWrap_UndoRedoRoundTrip(t *testing.T) {
	reduce := history.Wrap(counterTransition)
	base := reduce(nil, domain.Action{})

	changed := reduce(base, domain.Action{Type: actionIncrement})
	undone := reduce(changed, domain.Action{Type: domain.ActionUndo})
	assert.Same(t, base.Present(), undone.Present())

	redone := reduce(undone, domain.Action{Type: domain.ActionRedo})
	assert.Same(t, changed.Present(), redone.Present())
	assert.Equal(t, 1, redone.PastLen())
	assert.Equal(t, 0, redone.FutureLen())
}

func TestWrap_ChangeDiscardsFuture(t *testing.T) {
	reduce := history.Wrap(intTransition)
	state := reduce(nil, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: domain.ActionUndo})
	require.True(t, state.CanRedo())

	state = reduce(state, domain.Action{Type: actionIncrement})
	assert.False(t, state.CanRedo())
	assert.Equal(t, []int{0, 1}, state.Past())
	assert.Equal(t, 2, state.Present())
}

func TestWrap_ResetTypesAlwaysTruncate(t *testing.T) {
	const reset = "RESET"
	reduce := history.Wrap(intTransition, history.WithResetTypes(reset))

	state := reduce(nil, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: domain.ActionUndo})
	require.True(t, state.CanUndo())
	require.True(t, state.CanRedo())

	// The reset action leaves the present as is, yet history is dropped.
	reset1 := reduce(state, domain.Action{Type: reset})
	assert.NotSame(t, state, reset1)
	assert.Equal(t, state.Present(), reset1.Present())
	assert.Empty(t, reset1.Past())
	assert.Empty(t, reset1.Future())
}

func TestWrap_UndoDoesNotCorruptSharedHistory(t *testing.T) {
	reduce := history.Wrap(intTransition)
	state := reduce(nil, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: actionIncrement})
	snapshot := state

	undone := reduce(state, domain.Action{Type: domain.ActionUndo})
	_ = reduce(undone, domain.Action{Type: actionIncrement})

	assert.Equal(t, []int{0, 1, 2}, snapshot.Past(), "older envelopes must keep their own history")
}

func TestEnvelope_JSON(t *testing.T) {
	reduce := history.Wrap(intTransition)
	state := reduce(nil, domain.Action{Type: actionIncrement})
	state = reduce(state, domain.Action{Type: domain.ActionUndo})

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{"past":[],"present":0,"future":[1]}`, string(data))

	var back history.Envelope[int]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 0, back.Present())
	assert.Equal(t, []int{1}, back.Future())
}

func TestRestore(t *testing.T) {
	past := []int{0, 1}
	e := history.Restore(past, 2, []int{3})
	past[0] = 99

	assert.Equal(t, []int{0, 1}, e.Past())
	assert.Equal(t, 2, e.Present())
	assert.Equal(t, []int{3}, e.Future())

	undone := history.Wrap(intTransition)(e, domain.Action{Type: domain.ActionUndo})
	assert.Equal(t, 1, undone.Present())
	assert.Equal(t, []int{2, 3}, undone.Future())
}
