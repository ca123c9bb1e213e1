package circuit

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Registry owns a flattened view of one gate tree: a label-keyed map of
// every reachable node (leaves under their variable name, gates under
// their label), the gate labels in pre-order registration order, and the
// designated root label. It is built once and read-only afterwards.
type Registry struct {
	nodes      map[string]*Node
	gateLabels []string
	root       string
	hasRoot    bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		nodes:      make(map[string]*Node),
		gateLabels: make([]string, 0),
	}
}

// Build constructs a registry from a gate tree by walking it in pre-order
// and registering every node exactly once. The tree root is the only node
// marked as root, so the root designation cannot drift afterwards.
func Build(root *Node) (*Registry, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrMissingRoot)
	}

	r := NewRegistry()
	var walk func(n *Node, isRoot bool, depth int) error
	walk = func(n *Node, isRoot bool, depth int) error {
		if depth > maxDepth {
			return fmt.Errorf("%w: depth %d", ErrDepthExceeded, depth)
		}
		isLeaf, err := r.Register(n, isRoot)
		if err != nil {
			return err
		}
		if isLeaf {
			return nil
		}
		if err := walk(n.left, false, depth+1); err != nil {
			return err
		}
		if n.right != nil {
			return walk(n.right, false, depth+1)
		}
		return nil
	}
	if err := walk(root, true, 0); err != nil {
		return nil, err
	}
	return r, nil
}

// Register inserts a node into the label map, appending gate labels to the
// ordered gate list. Re-registering under the same label overwrites the
// previous entry, so callers driving a walk by hand must visit each node
// exactly once. Marking a second node as root is an error. Returns whether
// the node was a leaf, which tells a tree walker not to recurse further.
func (r *Registry) Register(node *Node, isRoot bool) (bool, error) {
	if node == nil {
		return false, fmt.Errorf("register: nil node")
	}

	key := node.Label()
	if _, seen := r.nodes[key]; !seen && !node.IsLeaf() {
		r.gateLabels = append(r.gateLabels, key)
	}
	r.nodes[key] = node

	if isRoot {
		if r.hasRoot {
			return false, fmt.Errorf("%w: %q, then %q", ErrRootRedefined, r.root, key)
		}
		r.root = key
		r.hasRoot = true
	}
	return node.IsLeaf(), nil
}

// Root returns the designated root gate
func (r *Registry) Root() (*Node, error) {
	if !r.hasRoot {
		return nil, ErrMissingRoot
	}
	node, ok := r.nodes[r.root]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingRoot, r.root)
	}
	if node.IsLeaf() {
		return nil, fmt.Errorf("%w: %q is a leaf", ErrUnknownGate, r.root)
	}
	return node, nil
}

// RootLabel returns the designated root label, if any
func (r *Registry) RootLabel() (string, bool) {
	return r.root, r.hasRoot
}

// Node returns the node registered under the given label or variable name
func (r *Registry) Node(label string) (*Node, bool) {
	node, ok := r.nodes[label]
	return node, ok
}

// GateLabels returns the gate labels in registration order. The returned
// slice is a copy; mutating it does not affect the registry.
func (r *Registry) GateLabels() []string {
	labels := make([]string, len(r.gateLabels))
	copy(labels, r.gateLabels)
	return labels
}

// GateCount returns the number of registered gates
func (r *Registry) GateCount() int {
	return len(r.gateLabels)
}

// EvaluateWithFaults evaluates the circuit's root gate under the given
// input assignment and fault hypothesis.
func (r *Registry) EvaluateWithFaults(inputs map[string]bool, faulty mapset.Set[string]) (bool, error) {
	root, err := r.Root()
	if err != nil {
		return false, err
	}
	return root.Evaluate(inputs, faulty)
}
