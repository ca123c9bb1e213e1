package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fyerfyer/logicdiag/pkg/circuit"
	"github.com/fyerfyer/logicdiag/pkg/record"
)

// Regular expressions for parsing the netlist format
var (
	inputRegex = regexp.MustCompile(`^INPUT\((\w+)\)$`)
	topRegex   = regexp.MustCompile(`^TOP\((\w+)\)$`)
	gateRegex  = regexp.MustCompile(`^(\w+)\s*=\s*(\S+?)\s*\((.+)\)$`)
)

// ParseNetlistFile reads a circuit description from a file. The format is
// line based:
//
//	# comment
//	INPUT(a)
//	INPUT(b)
//	INPUT(c)
//	A = and(a, b)
//	B = or(A, c)
//	TOP(B)
//
// Input variables are lower-case, gate labels are not, and TOP names the
// root gate. Gate definitions may reference gates defined later in the
// file.
func ParseNetlistFile(filename string) (*circuit.Registry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reg, err := ParseNetlist(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return reg, nil
}

// ParseNetlist reads a circuit description from r and returns the flattened
// registry of the resulting gate tree.
func ParseNetlist(r io.Reader) (*circuit.Registry, error) {
	var (
		records   []record.Record
		declared  = make(map[string]bool) // INPUT-declared variables
		defined   = make(map[string]int)  // gate label -> line number
		topLabel  string
		topLine   int
		lineCount int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineCount++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if matches := inputRegex.FindStringSubmatch(line); matches != nil {
			name := matches[1]
			if strings.ToLower(name) != name {
				return nil, fmt.Errorf("line %d: input %q must be lower-case", lineCount, name)
			}
			declared[name] = true
			continue
		}

		if matches := topRegex.FindStringSubmatch(line); matches != nil {
			if topLabel != "" {
				return nil, fmt.Errorf("line %d: TOP already declared on line %d", lineCount, topLine)
			}
			topLabel = matches[1]
			topLine = lineCount
			continue
		}

		matches := gateRegex.FindStringSubmatch(line)
		if matches == nil {
			return nil, fmt.Errorf("line %d: cannot parse %q", lineCount, line)
		}

		label, opSymbol := matches[1], matches[2]
		if prev, dup := defined[label]; dup {
			return nil, fmt.Errorf("line %d: gate %q already defined on line %d", lineCount, label, prev)
		}
		defined[label] = lineCount

		op, err := circuit.ParseOp(opSymbol)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineCount, err)
		}

		operands := strings.Split(matches[3], ",")
		for i := range operands {
			operands[i] = strings.TrimSpace(operands[i])
		}
		if len(operands) != op.Arity() {
			return nil, fmt.Errorf("line %d: %s takes %d operand(s), got %d",
				lineCount, op, op.Arity(), len(operands))
		}

		rec := record.Record{LeftRef: operands[0], Operator: op.String(), Label: label}
		if len(operands) == 2 {
			rec.RightRef = operands[1]
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading netlist: %w", err)
	}

	if topLabel == "" {
		return nil, fmt.Errorf("netlist has no TOP declaration")
	}
	if _, ok := defined[topLabel]; !ok {
		return nil, fmt.Errorf("TOP gate %q is not defined", topLabel)
	}

	// Leaf references must be declared as inputs so a typoed gate label
	// that happens to be lower-case fails here instead of at evaluation.
	for _, rec := range records {
		for _, ref := range []string{rec.LeftRef, rec.RightRef} {
			if ref == "" || strings.ToLower(ref) != ref {
				continue
			}
			if !declared[ref] {
				return nil, fmt.Errorf("gate %q references undeclared input %q", rec.Label, ref)
			}
		}
	}

	// Record resolution wants the root first; definitions may appear in
	// any order in the file.
	ordered := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if rec.Label == topLabel {
			ordered = append(ordered, rec)
			break
		}
	}
	for _, rec := range records {
		if rec.Label != topLabel {
			ordered = append(ordered, rec)
		}
	}

	root, err := record.FromRecords(ordered)
	if err != nil {
		return nil, err
	}
	return circuit.Build(root)
}
