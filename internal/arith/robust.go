package arith

import (
	"github.com/roach88/arith/internal/num"
)

// Operation names.
const (
	OpAdd        = "add"
	OpAdd3       = "add3"
	OpRobustAdd  = "robust_add"
	OpRobustAdd3 = "robust_add3"
	OpProduct    = "product"
)

// RobustAdd validates a and b and returns their sum.
//
// Returns an InvalidOperand error if an operand is absent or not a supported
// kind, and a ComputationFailed error if the operands cannot be combined.
func (c *Calculator) RobustAdd(a, b any) (num.Value, error) {
	vals, err := operands(OpRobustAdd, a, b)
	if err != nil {
		return nil, err
	}
	return c.apply(OpRobustAdd, opAdd, vals[0], vals[1])
}

// RobustAdd3 validates a, b and c and returns (a + b) + c.
// All three operands are validated before anything is computed.
func (c *Calculator) RobustAdd3(a, b, x any) (num.Value, error) {
	vals, err := operands(OpRobustAdd3, a, b, x)
	if err != nil {
		return nil, err
	}
	return c.fold(OpRobustAdd3, opAdd, vals)
}

// Product validates a and b and returns their product.
func (c *Calculator) Product(a, b any) (num.Value, error) {
	vals, err := operands(OpProduct, a, b)
	if err != nil {
		return nil, err
	}
	return c.apply(OpProduct, opMul, vals[0], vals[1])
}

func (c *Calculator) apply(name string, op binaryOp, a, b num.Value) (num.Value, error) {
	res, err := c.combine(op, a, b)
	if err != nil {
		return nil, newComputationError(name, a, b, err)
	}
	return res, nil
}

// fold combines vals left to right.
func (c *Calculator) fold(name string, op binaryOp, vals []num.Value) (num.Value, error) {
	acc := vals[0]
	for _, v := range vals[1:] {
		next, err := c.apply(name, op, acc, v)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}
