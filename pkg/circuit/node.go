package circuit

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// maxDepth bounds evaluation and reconstruction recursion so malformed
// input fails cleanly instead of overflowing the call stack.
const maxDepth = 10000

type nodeKind int

const (
	leafNode nodeKind = iota
	gateNode
)

// Node is one vertex of a gate tree: either a leaf naming a boolean input
// variable, or a gate applying an operator to one or two operand subtrees.
// Nodes are built only through the factory functions below, so a leaf can
// never carry children and a gate can never miss an operand.
type Node struct {
	kind     nodeKind
	variable string // leaf only
	label    string // gate only
	op       Op     // gate only
	left     *Node  // gate only
	right    *Node  // gate only, nil for unary gates
}

// NewLeaf creates a leaf node for the input variable name. Variable names
// must be lower-case; gate labels are not, and the serializer relies on
// the two namespaces staying disjoint.
func NewLeaf(variable string) (*Node, error) {
	if variable == "" || strings.ToLower(variable) != variable {
		return nil, fmt.Errorf("%w: variable %q must be lower-case", ErrBadLabel, variable)
	}
	return &Node{kind: leafNode, variable: variable}, nil
}

// NewGate creates a binary gate node with the given operator and label.
func NewGate(op Op, label string, left, right *Node) (*Node, error) {
	if op.Arity() != 2 {
		return nil, fmt.Errorf("%w: %s is not a binary operator", ErrUnknownOperator, op)
	}
	if err := checkGateLabel(label); err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("gate %s: missing operand", label)
	}
	return &Node{kind: gateNode, label: label, op: op, left: left, right: right}, nil
}

// NewUnaryGate creates a unary gate node with the given operator and label.
func NewUnaryGate(op Op, label string, operand *Node) (*Node, error) {
	if op.Arity() != 1 {
		return nil, fmt.Errorf("%w: %s is not a unary operator", ErrUnknownOperator, op)
	}
	if err := checkGateLabel(label); err != nil {
		return nil, err
	}
	if operand == nil {
		return nil, fmt.Errorf("gate %s: missing operand", label)
	}
	return &Node{kind: gateNode, label: label, op: op, left: operand}, nil
}

func checkGateLabel(label string) error {
	if label == "" || strings.ToLower(label) == label {
		return fmt.Errorf("%w: gate label %q must not be lower-case", ErrBadLabel, label)
	}
	return nil
}

// IsLeaf returns true if the node is an input variable
func (n *Node) IsLeaf() bool {
	return n.kind == leafNode
}

// Variable returns the input variable name (empty for gates)
func (n *Node) Variable() string {
	return n.variable
}

// Label returns the gate label for gates and the variable name for leaves,
// i.e. the key the node is registered under.
func (n *Node) Label() string {
	if n.kind == leafNode {
		return n.variable
	}
	return n.label
}

// Op returns the gate's operator (OpNot for leaves, which have none)
func (n *Node) Op() Op {
	return n.op
}

// Left returns the first operand subtree (nil for leaves)
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the second operand subtree (nil for leaves and unary gates)
func (n *Node) Right() *Node {
	return n.right
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.kind == leafNode {
		return n.variable
	}
	return fmt.Sprintf("%s(%s)", n.label, n.op)
}

// Evaluate computes the node's boolean value under the given input
// assignment and fault hypothesis. A gate whose label is in faulty has its
// operator result inverted at the moment it is produced, before the parent
// consumes it, so a faulted internal gate changes everything above it.
// Evaluation is purely functional over the tree and its two arguments.
func (n *Node) Evaluate(inputs map[string]bool, faulty mapset.Set[string]) (bool, error) {
	return n.evaluate(inputs, faulty, 0)
}

func (n *Node) evaluate(inputs map[string]bool, faulty mapset.Set[string], depth int) (bool, error) {
	if depth > maxDepth {
		return false, fmt.Errorf("%w: depth %d", ErrDepthExceeded, depth)
	}

	if n.kind == leafNode {
		value, ok := inputs[n.variable]
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownVariable, n.variable)
		}
		return value, nil
	}

	left, err := n.left.evaluate(inputs, faulty, depth+1)
	if err != nil {
		return false, err
	}

	var right bool
	if n.op.Arity() == 2 {
		right, err = n.right.evaluate(inputs, faulty, depth+1)
		if err != nil {
			return false, err
		}
	}

	output, err := n.op.apply(left, right)
	if err != nil {
		return false, fmt.Errorf("gate %s: %w", n.label, err)
	}

	if faulty != nil && faulty.Contains(n.label) {
		return !output, nil
	}
	return output, nil
}
