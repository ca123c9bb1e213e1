package circuit

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleTree builds the scenario circuit: gate A = a and b, root gate
// B = A or c.
func exampleTree(t *testing.T) *Node {
	t.Helper()

	a, err := NewLeaf("a")
	require.NoError(t, err)
	b, err := NewLeaf("b")
	require.NoError(t, err)
	c, err := NewLeaf("c")
	require.NoError(t, err)

	gateA, err := NewGate(OpAnd, "A", a, b)
	require.NoError(t, err)
	gateB, err := NewGate(OpOr, "B", gateA, c)
	require.NoError(t, err)
	return gateB
}

func TestNewLeafValidation(t *testing.T) {
	leaf, err := NewLeaf("a")
	require.NoError(t, err)
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, "a", leaf.Variable())
	assert.Equal(t, "a", leaf.Label())

	_, err = NewLeaf("A")
	require.ErrorIs(t, err, ErrBadLabel)
	_, err = NewLeaf("")
	require.ErrorIs(t, err, ErrBadLabel)
}

func TestNewGateValidation(t *testing.T) {
	a, _ := NewLeaf("a")
	b, _ := NewLeaf("b")

	_, err := NewGate(OpAnd, "lower", a, b)
	require.ErrorIs(t, err, ErrBadLabel)

	_, err = NewGate(OpNot, "N", a, b)
	require.ErrorIs(t, err, ErrUnknownOperator)

	_, err = NewUnaryGate(OpAnd, "N", a)
	require.ErrorIs(t, err, ErrUnknownOperator)

	_, err = NewGate(OpAnd, "A", a, nil)
	require.Error(t, err)

	gate, err := NewUnaryGate(OpNot, "N", a)
	require.NoError(t, err)
	assert.False(t, gate.IsLeaf())
	assert.Nil(t, gate.Right())
	assert.Equal(t, "N(not)", gate.String())
}

func TestEvaluateNominal(t *testing.T) {
	root := exampleTree(t)
	inputs := map[string]bool{"a": true, "b": true, "c": true}

	got, err := root.Evaluate(inputs, nil)
	require.NoError(t, err)
	assert.True(t, got)

	// A alone is also true under this assignment.
	gotA, err := root.Left().Evaluate(inputs, nil)
	require.NoError(t, err)
	assert.True(t, gotA)
}

func TestEvaluateFaultInversion(t *testing.T) {
	root := exampleTree(t)
	inputs := map[string]bool{"a": true, "b": true, "c": true}

	// Faulting the root inverts the final result only.
	got, err := root.Evaluate(inputs, mapset.NewThreadUnsafeSet("B"))
	require.NoError(t, err)
	assert.False(t, got)

	// Faulting A flips A, but B = false or true is still true.
	got, err = root.Evaluate(inputs, mapset.NewThreadUnsafeSet("A"))
	require.NoError(t, err)
	assert.True(t, got)

	// Faulting both: A -> false, B computed true, then inverted.
	got, err = root.Evaluate(inputs, mapset.NewThreadUnsafeSet("A", "B"))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluateFaultChangesAncestors(t *testing.T) {
	// N = not(a), B = or(N, b): with a=1,b=0 the nominal output is 0;
	// faulting the internal gate N flips everything above it.
	a, _ := NewLeaf("a")
	b, _ := NewLeaf("b")
	gateN, err := NewUnaryGate(OpNot, "N", a)
	require.NoError(t, err)
	root, err := NewGate(OpOr, "B", gateN, b)
	require.NoError(t, err)

	inputs := map[string]bool{"a": true, "b": false}

	got, err := root.Evaluate(inputs, nil)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = root.Evaluate(inputs, mapset.NewThreadUnsafeSet("N"))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluateUnknownVariable(t *testing.T) {
	root := exampleTree(t)
	_, err := root.Evaluate(map[string]bool{"a": true, "b": true}, nil)
	require.ErrorIs(t, err, ErrUnknownVariable)
	assert.Contains(t, err.Error(), "c")
}

func TestEvaluateIgnoresFaultCount(t *testing.T) {
	root := exampleTree(t)
	inputs := map[string]bool{"a": true, "b": true, "c": true}

	faults := mapset.NewThreadUnsafeSet("B")
	faults.Add("B") // membership, not count, decides inversion

	got, err := root.Evaluate(inputs, faults)
	require.NoError(t, err)
	assert.False(t, got)
}
