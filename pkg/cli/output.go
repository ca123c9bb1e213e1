package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/fyerfyer/logicdiag/pkg/diagnose"
)

// parseInputs converts "a=1,b=0,c=true" into an input assignment.
func parseInputs(spec string) (map[string]bool, error) {
	inputs := make(map[string]bool)
	if strings.TrimSpace(spec) == "" {
		return inputs, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		name, valueStr, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("invalid input %q (expected name=value)", pair)
		}
		value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("invalid value for input %q: %w", name, err)
		}
		inputs[strings.TrimSpace(name)] = value
	}
	return inputs, nil
}

// parseFaults converts "A,B" into a fault set.
func parseFaults(spec string) mapset.Set[string] {
	faults := mapset.NewThreadUnsafeSet[string]()
	for _, label := range strings.Split(spec, ",") {
		label = strings.TrimSpace(label)
		if label != "" {
			faults.Add(label)
		}
	}
	return faults
}

// writeSets prints a family of fault sets in the requested format.
func writeSets(w io.Writer, format string, sets []mapset.Set[string]) error {
	normalized := make([][]string, len(sets))
	for i, s := range sets {
		normalized[i] = diagnose.SortedLabels(s)
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		return enc.Encode(normalized)
	}

	if len(normalized) == 0 {
		fmt.Fprintln(w, "no fault sets found")
		return nil
	}
	for _, labels := range normalized {
		fmt.Fprintf(w, "{%s}\n", strings.Join(labels, ", "))
	}
	return nil
}

// writeBool prints a single evaluation result in the requested format.
func writeBool(w io.Writer, format string, value bool) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(map[string]bool{"result": value})
	}
	_, err := fmt.Fprintln(w, value)
	return err
}
