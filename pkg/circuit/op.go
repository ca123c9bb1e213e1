package circuit

import "fmt"

// Op represents the logic function computed by a gate
type Op int

const (
	OpNot Op = iota
	OpAnd
	OpNand
	OpOr
	OpNor
	OpXor
	OpXnor
	OpImplies
	OpEquals
)

// String returns the canonical operator symbol
func (op Op) String() string {
	switch op {
	case OpNot:
		return "not"
	case OpAnd:
		return "and"
	case OpNand:
		return "nand"
	case OpOr:
		return "or"
	case OpNor:
		return "nor"
	case OpXor:
		return "xor"
	case OpXnor:
		return "xnor"
	case OpImplies:
		return "implies"
	case OpEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// Arity returns the number of operands the operator consumes (1 or 2)
func (op Op) Arity() int {
	if op == OpNot {
		return 1
	}
	return 2
}

// apply computes the operator's boolean function. The right operand is
// ignored for unary operators.
func (op Op) apply(x, y bool) (bool, error) {
	switch op {
	case OpNot:
		return !x, nil
	case OpAnd:
		return x && y, nil
	case OpNand:
		return !(x && y), nil
	case OpOr:
		return x || y, nil
	case OpNor:
		return !(x || y), nil
	case OpXor:
		return x != y, nil
	case OpXnor:
		return x == y, nil
	case OpImplies:
		return !x || y, nil
	case OpEquals:
		return x == y, nil
	default:
		return false, fmt.Errorf("%w: op %d", ErrUnknownOperator, int(op))
	}
}

// ParseOp converts an operator symbol to an Op. Besides the canonical
// symbols it accepts the alias spellings a front-end may emit.
func ParseOp(symbol string) (Op, error) {
	switch symbol {
	case "not", "-", "~":
		return OpNot, nil
	case "and":
		return OpAnd, nil
	case "nand":
		return OpNand, nil
	case "or":
		return OpOr, nil
	case "nor":
		return OpNor, nil
	case "xor", "!=":
		return OpXor, nil
	case "xnor":
		return OpXnor, nil
	case "implies", "=>":
		return OpImplies, nil
	case "equals", "=":
		return OpEquals, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
	}
}
