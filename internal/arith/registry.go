package arith

import (
	"errors"
	"fmt"

	"github.com/roach88/arith/internal/num"
)

// ErrUnknownOperation is returned by Call for a name not in the registry.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation describes one entry of the operation registry.
type Operation struct {
	Name      string
	Arity     int
	Validated bool
	Summary   string
}

var registry = []Operation{
	{Name: OpAdd, Arity: 2, Validated: false, Summary: "native addition, no validation"},
	{Name: OpAdd3, Arity: 3, Validated: false, Summary: "native three-way addition, no validation"},
	{Name: OpRobustAdd, Arity: 2, Validated: true, Summary: "validated addition"},
	{Name: OpRobustAdd3, Arity: 3, Validated: true, Summary: "validated three-way addition"},
	{Name: OpProduct, Arity: 2, Validated: true, Summary: "validated multiplication"},
}

// Operations returns the registry in declaration order.
func Operations() []Operation {
	out := make([]Operation, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range registry {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Call invokes the named operation on dynamically typed operands.
//
// Validated operations behave exactly like their methods. Unvalidated
// operations skip presence and kind checks; an operand the arithmetic cannot
// use surfaces as ComputationFailed instead of a panic. A wrong operand
// count is InvalidOperand for every operation.
func (c *Calculator) Call(name string, raw ...any) (num.Value, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	if err := checkArity(op.Name, op.Arity, raw); err != nil {
		return nil, err
	}

	switch op.Name {
	case OpRobustAdd:
		return c.RobustAdd(raw[0], raw[1])
	case OpRobustAdd3:
		return c.RobustAdd3(raw[0], raw[1], raw[2])
	case OpProduct:
		return c.Product(raw[0], raw[1])
	case OpAdd, OpAdd3:
		return c.callUnvalidated(op.Name, raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
}

// callUnvalidated lifts operands without reporting why a lift failed; the
// failure surfaces as the pair the arithmetic could not combine.
func (c *Calculator) callUnvalidated(name string, raw []any) (num.Value, error) {
	vals := make([]num.Value, len(raw))
	for i, x := range raw {
		v, reason := lift(x)
		if reason != "" {
			l, r := i-1, i
			if i == 0 {
				l, r = 0, 1
			}
			lrepr, lkind := rawRepr(raw[l])
			rrepr, rkind := rawRepr(raw[r])
			return nil, &ComputationError{
				Op:        name,
				Left:      lrepr,
				LeftKind:  lkind,
				Right:     rrepr,
				RightKind: rkind,
				Err:       fmt.Errorf("%w: cannot add %s and %s", ErrIncompatibleKinds, lkind, rkind),
			}
		}
		vals[i] = v
	}
	return c.fold(name, opAdd, vals)
}

func rawRepr(x any) (repr, kind string) {
	if v, reason := lift(x); reason == "" {
		return v.String(), v.Kind().String()
	}
	if x == nil {
		return "none", "absent"
	}
	return fmt.Sprintf("%#v", x), typeName(x)
}
