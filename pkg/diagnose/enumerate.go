// Package diagnose searches the fault-hypothesis space of a circuit for
// gate subsets whose inversion explains an observed output, and reduces
// the resulting family of explanations to a minimal antichain.
package diagnose

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/fyerfyer/logicdiag/pkg/circuit"
)

// FindFaultySets exhaustively enumerates every subset of the circuit's
// gates, smallest size first and in lexicographic combination order within
// each size, and returns those whose hypothesized inversion makes the
// circuit produce expected under the given inputs. Up to 2^N-1 candidates
// are evaluated; completeness matters more than speed here, and diagnostic
// circuits are small.
func FindFaultySets(reg *circuit.Registry, inputs map[string]bool, expected bool) ([]mapset.Set[string], error) {
	candidates := enumerateSubsets(reg.GateLabels())

	matches := make([]mapset.Set[string], 0)
	for _, candidate := range candidates {
		result, err := reg.EvaluateWithFaults(inputs, candidate)
		if err != nil {
			return nil, fmt.Errorf("evaluate with faults %v: %w", sortedLabels(candidate), err)
		}
		if result == expected {
			matches = append(matches, candidate)
		}
	}
	return matches, nil
}

// FindFaultySetsParallel is FindFaultySets with the candidate space
// partitioned across workers. Each evaluation is independent and read-only
// against the registry, so the workers share no mutable state; results are
// collected by candidate index and therefore come back in exactly the
// order the sequential search produces.
func FindFaultySetsParallel(ctx context.Context, reg *circuit.Registry, inputs map[string]bool, expected bool, workers int) ([]mapset.Set[string], error) {
	if workers <= 1 {
		return FindFaultySets(reg, inputs, expected)
	}

	candidates := enumerateSubsets(reg.GateLabels())
	hits := make([]bool, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(candidates); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := reg.EvaluateWithFaults(inputs, candidates[i])
				if err != nil {
					return fmt.Errorf("evaluate with faults %v: %w", sortedLabels(candidates[i]), err)
				}
				hits[i] = result == expected
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]mapset.Set[string], 0)
	for i, hit := range hits {
		if hit {
			matches = append(matches, candidates[i])
		}
	}
	return matches, nil
}

// enumerateSubsets produces every non-empty subset of gates, size 1 to
// len(gates), each size in lexicographic index order.
func enumerateSubsets(gates []string) []mapset.Set[string] {
	n := len(gates)
	subsets := make([]mapset.Set[string], 0)

	for r := 1; r <= n; r++ {
		// Standard lexicographic k-combination walk over index vectors.
		indices := make([]int, r)
		for i := range indices {
			indices[i] = i
		}
		for {
			labels := make([]string, r)
			for i, idx := range indices {
				labels[i] = gates[idx]
			}
			subsets = append(subsets, mapset.NewThreadUnsafeSet(labels...))

			// Advance to the next combination.
			i := r - 1
			for i >= 0 && indices[i] == n-r+i {
				i--
			}
			if i < 0 {
				break
			}
			indices[i]++
			for j := i + 1; j < r; j++ {
				indices[j] = indices[j-1] + 1
			}
		}
	}
	return subsets
}
