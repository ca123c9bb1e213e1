package diagnose

import (
	"context"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/logicdiag/pkg/circuit"
)

// scenarioRegistry builds the circuit A = a and b, root B = A or c.
func scenarioRegistry(t *testing.T) *circuit.Registry {
	t.Helper()

	a, err := circuit.NewLeaf("a")
	require.NoError(t, err)
	b, err := circuit.NewLeaf("b")
	require.NoError(t, err)
	c, err := circuit.NewLeaf("c")
	require.NoError(t, err)

	gateA, err := circuit.NewGate(circuit.OpAnd, "A", a, b)
	require.NoError(t, err)
	gateB, err := circuit.NewGate(circuit.OpOr, "B", gateA, c)
	require.NoError(t, err)

	reg, err := circuit.Build(gateB)
	require.NoError(t, err)
	return reg
}

// threeGateRegistry builds N = not(b), A = a and N, root B = A or c.
func threeGateRegistry(t *testing.T) *circuit.Registry {
	t.Helper()

	a, err := circuit.NewLeaf("a")
	require.NoError(t, err)
	b, err := circuit.NewLeaf("b")
	require.NoError(t, err)
	c, err := circuit.NewLeaf("c")
	require.NoError(t, err)

	gateN, err := circuit.NewUnaryGate(circuit.OpNot, "N", b)
	require.NoError(t, err)
	gateA, err := circuit.NewGate(circuit.OpAnd, "A", a, gateN)
	require.NoError(t, err)
	gateB, err := circuit.NewGate(circuit.OpOr, "B", gateA, c)
	require.NoError(t, err)

	reg, err := circuit.Build(gateB)
	require.NoError(t, err)
	return reg
}

func asSortedSlices(sets []mapset.Set[string]) [][]string {
	out := make([][]string, len(sets))
	for i, s := range sets {
		out[i] = SortedLabels(s)
	}
	return out
}

func TestFindFaultySetsScenario(t *testing.T) {
	reg := scenarioRegistry(t)
	inputs := map[string]bool{"a": true, "b": true, "c": true}

	sets, err := FindFaultySets(reg, inputs, false)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"B"}, {"A", "B"}}, asSortedSlices(sets))
}

func TestFindFaultySetsExhaustive(t *testing.T) {
	reg := threeGateRegistry(t)
	inputs := map[string]bool{"a": true, "b": false, "c": false}
	gates := reg.GateLabels()

	for _, expected := range []bool{false, true} {
		sets, err := FindFaultySets(reg, inputs, expected)
		require.NoError(t, err)

		found := make(map[string]bool)
		for _, s := range sets {
			found[canonicalKey(s)] = true
		}

		// Brute-force every non-empty subset and require exact agreement
		// with the enumerator, in both directions.
		for bits := 1; bits < 1<<len(gates); bits++ {
			subset := mapset.NewThreadUnsafeSet[string]()
			for i, label := range gates {
				if bits&(1<<i) != 0 {
					subset.Add(label)
				}
			}
			result, err := reg.EvaluateWithFaults(inputs, subset)
			require.NoError(t, err)
			assert.Equal(t, result == expected, found[canonicalKey(subset)],
				"subset %v expected %v", SortedLabels(subset), expected)
		}
	}
}

func TestFindFaultySetsSizeOrder(t *testing.T) {
	reg := threeGateRegistry(t)
	inputs := map[string]bool{"a": true, "b": false, "c": true}

	sets, err := FindFaultySets(reg, inputs, false)
	require.NoError(t, err)
	require.NotEmpty(t, sets)

	for i := 1; i < len(sets); i++ {
		assert.LessOrEqual(t, sets[i-1].Cardinality(), sets[i].Cardinality())
	}
}

func TestFindFaultySetsParallelMatchesSequential(t *testing.T) {
	reg := threeGateRegistry(t)
	inputs := map[string]bool{"a": false, "b": true, "c": false}

	sequential, err := FindFaultySets(reg, inputs, true)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 16} {
		parallel, err := FindFaultySetsParallel(context.Background(), reg, inputs, true, workers)
		require.NoError(t, err)
		assert.Equal(t, asSortedSlices(sequential), asSortedSlices(parallel),
			"workers=%d", workers)
	}
}

func TestFindFaultySetsParallelCancel(t *testing.T) {
	reg := threeGateRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindFaultySetsParallel(ctx, reg, map[string]bool{"a": true, "b": true, "c": true}, false, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindFaultySetsPropagatesEvaluationError(t *testing.T) {
	reg := scenarioRegistry(t)
	_, err := FindFaultySets(reg, map[string]bool{"a": true}, false)
	require.ErrorIs(t, err, circuit.ErrUnknownVariable)
}

func TestEnumerateSubsetsOrder(t *testing.T) {
	subsets := enumerateSubsets([]string{"A", "B", "C"})

	want := [][]string{
		{"A"}, {"B"}, {"C"},
		{"A", "B"}, {"A", "C"}, {"B", "C"},
		{"A", "B", "C"},
	}
	assert.Equal(t, want, asSortedSlices(subsets))
}
