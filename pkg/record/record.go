// Package record converts a gate tree to and from a flat, order-independent
// list of fixed-shape records, so a circuit can be persisted and exactly
// reconstructed without relying on node identity.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/fyerfyer/logicdiag/pkg/circuit"
)

// ErrUnresolvedLabel reports a gate reference with no matching record,
// a reference cycle, or a record that violates the casing convention.
// All of these mean the record list is malformed.
var ErrUnresolvedLabel = errors.New("unresolved gate label")

const maxDepth = 10000

// Record is the flat encoding of one gate node. Child references carry the
// referenced node's identity as a string: a leaf child contributes its
// variable name, a gate child its label. RightRef is empty for unary
// gates. IsLeaf is always false for serialized gates (leaves appear only
// as references) and Value is reserved for a potential leaf record format.
type Record struct {
	LeftRef  string
	RightRef string
	Operator string
	Label    string
	IsLeaf   bool
	Value    any
}

// MarshalJSON encodes the record as the positional 6-tuple
// [leftRef, rightRef, operator, label, isLeaf, value].
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.LeftRef, r.RightRef, r.Operator, r.Label, r.IsLeaf, r.Value})
}

// UnmarshalJSON decodes the positional 6-tuple form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("record is not a JSON array: %w", err)
	}
	if len(fields) != 6 {
		return fmt.Errorf("record has %d fields, want 6", len(fields))
	}
	if err := json.Unmarshal(fields[0], &r.LeftRef); err != nil {
		return fmt.Errorf("record leftRef: %w", err)
	}
	if err := json.Unmarshal(fields[1], &r.RightRef); err != nil {
		return fmt.Errorf("record rightRef: %w", err)
	}
	if err := json.Unmarshal(fields[2], &r.Operator); err != nil {
		return fmt.Errorf("record operator: %w", err)
	}
	if err := json.Unmarshal(fields[3], &r.Label); err != nil {
		return fmt.Errorf("record label: %w", err)
	}
	if err := json.Unmarshal(fields[4], &r.IsLeaf); err != nil {
		return fmt.Errorf("record isLeaf: %w", err)
	}
	if err := json.Unmarshal(fields[5], &r.Value); err != nil {
		return fmt.Errorf("record value: %w", err)
	}
	return nil
}

// ToRecords serializes the registry's tree as one record per gate, the
// root gate first and the remainder in registration order. Leaves are not
// emitted as standalone records; they only ever appear as references.
func ToRecords(reg *circuit.Registry) ([]Record, error) {
	root, err := reg.Root()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, reg.GateCount())
	records = append(records, gateRecord(root))

	for _, label := range reg.GateLabels() {
		if label == root.Label() {
			continue
		}
		node, ok := reg.Node(label)
		if !ok {
			return nil, fmt.Errorf("%w: registered gate %q has no node", ErrUnresolvedLabel, label)
		}
		records = append(records, gateRecord(node))
	}
	return records, nil
}

func gateRecord(gate *circuit.Node) Record {
	rec := Record{
		LeftRef:  gate.Left().Label(),
		Operator: gate.Op().String(),
		Label:    gate.Label(),
	}
	if gate.Right() != nil {
		rec.RightRef = gate.Right().Label()
	}
	return rec
}

// FromRecords rebuilds a gate tree from its flat record form. The first
// record's label is the root. A reference is a leaf variable if it is
// lower-case, otherwise it must name another record in the list. A
// reference with no record, a reference cycle, and a gate record with a
// lower-case label all fail with ErrUnresolvedLabel rather than guessing
// intent.
func FromRecords(records []Record) (*circuit.Node, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty record list", ErrUnresolvedLabel)
	}

	index := make(map[string]Record, len(records))
	for _, rec := range records {
		if rec.Label == "" || strings.ToLower(rec.Label) == rec.Label {
			return nil, fmt.Errorf("%w: gate record label %q is not a gate label", ErrUnresolvedLabel, rec.Label)
		}
		index[rec.Label] = rec
	}

	r := resolver{index: index, inProgress: mapset.NewThreadUnsafeSet[string]()}
	return r.resolve(records[0].Label, 0)
}

type resolver struct {
	index      map[string]Record
	inProgress mapset.Set[string]
}

func (r *resolver) resolve(label string, depth int) (*circuit.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnresolvedLabel, label, circuit.ErrDepthExceeded)
	}
	if r.inProgress.Contains(label) {
		return nil, fmt.Errorf("%w: reference cycle through %q", ErrUnresolvedLabel, label)
	}

	rec, ok := r.index[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedLabel, label)
	}

	op, err := circuit.ParseOp(rec.Operator)
	if err != nil {
		return nil, fmt.Errorf("gate %s: %w", label, err)
	}

	r.inProgress.Add(label)
	defer r.inProgress.Remove(label)

	left, err := r.resolveRef(rec.LeftRef, label, depth)
	if err != nil {
		return nil, err
	}

	if rec.RightRef == "" {
		return circuit.NewUnaryGate(op, label, left)
	}
	right, err := r.resolveRef(rec.RightRef, label, depth)
	if err != nil {
		return nil, err
	}
	return circuit.NewGate(op, label, left, right)
}

func (r *resolver) resolveRef(ref, parent string, depth int) (*circuit.Node, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: gate %q has an empty operand reference", ErrUnresolvedLabel, parent)
	}
	if strings.ToLower(ref) == ref {
		return circuit.NewLeaf(ref)
	}
	return r.resolve(ref, depth+1)
}
