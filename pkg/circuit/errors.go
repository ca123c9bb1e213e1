package circuit

import "errors"

// Every core failure is a structural or data defect; callers inspect them
// with errors.Is and stop the operation. Nothing here is transient.
var (
	// ErrUnknownVariable reports a leaf whose variable is absent from the
	// supplied input assignment.
	ErrUnknownVariable = errors.New("unknown input variable")

	// ErrUnknownOperator reports an operator symbol with no entry in the
	// operator table.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrMissingRoot reports a registry with no designated root gate.
	ErrMissingRoot = errors.New("no root gate designated")

	// ErrUnknownGate reports a root label that resolves to a leaf instead
	// of a gate.
	ErrUnknownGate = errors.New("root is not a gate")

	// ErrRootRedefined reports an attempt to designate a second root.
	ErrRootRedefined = errors.New("root already designated")

	// ErrBadLabel reports a label or variable name that violates the
	// casing convention (variables lower-case, gate labels not).
	ErrBadLabel = errors.New("label violates casing convention")

	// ErrDepthExceeded reports a tree deeper than the recursion guard
	// allows, which in practice means malformed input.
	ErrDepthExceeded = errors.New("maximum tree depth exceeded")
)
