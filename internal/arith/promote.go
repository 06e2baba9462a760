package arith

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/arith/internal/num"
)

type binaryOp uint8

const (
	opAdd binaryOp = iota + 1
	opMul
)

func (o binaryOp) String() string {
	if o == opMul {
		return "multiply"
	}
	return "add"
}

// Promote returns the kind of the result of combining kinds a and b.
// ok is false when the kinds cannot be combined (decimal with float or complex).
func Promote(a, b num.Kind) (kind num.Kind, ok bool) {
	switch a {
	case num.KindInt:
		switch b {
		case num.KindInt, num.KindFloat, num.KindComplex, num.KindDecimal:
			return b, true
		}
	case num.KindFloat:
		switch b {
		case num.KindInt, num.KindFloat:
			return num.KindFloat, true
		case num.KindComplex:
			return num.KindComplex, true
		case num.KindDecimal:
			return 0, false
		}
	case num.KindComplex:
		switch b {
		case num.KindInt, num.KindFloat, num.KindComplex:
			return num.KindComplex, true
		case num.KindDecimal:
			return 0, false
		}
	case num.KindDecimal:
		switch b {
		case num.KindInt, num.KindDecimal:
			return num.KindDecimal, true
		case num.KindFloat, num.KindComplex:
			return 0, false
		}
	}
	return 0, false
}

// combine promotes a and b to a common kind and applies op.
// Errors are low-level causes; callers wrap them in ComputationError.
func (c *Calculator) combine(op binaryOp, a, b num.Value) (num.Value, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: cannot %s %s and %s", ErrIncompatibleKinds, op, kindName(a), kindName(b))
	}
	kind, ok := Promote(a.Kind(), b.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s %s and %s", ErrIncompatibleKinds, op, a.Kind(), b.Kind())
	}

	switch kind {
	case num.KindInt:
		return combineInt(op, a.(num.Int), b.(num.Int))
	case num.KindFloat:
		x, y := asFloat(a), asFloat(b)
		if op == opMul {
			return x * y, nil
		}
		return x + y, nil
	case num.KindComplex:
		x, y := asComplex(a), asComplex(b)
		if op == opMul {
			return x * y, nil
		}
		return x + y, nil
	case num.KindDecimal:
		return c.combineDecimal(op, asDecimal(a), asDecimal(b))
	default:
		return nil, fmt.Errorf("%w: unknown kind %s", ErrIncompatibleKinds, kind)
	}
}

func combineInt(op binaryOp, x, y num.Int) (num.Value, error) {
	if op == opMul {
		if isMulOverflow(int64(x), int64(y)) {
			return nil, fmt.Errorf("%w: %d * %d", ErrIntegerOverflow, x, y)
		}
		return x * y, nil
	}
	if isAddOverflow(int64(x), int64(y)) {
		return nil, fmt.Errorf("%w: %d + %d", ErrIntegerOverflow, x, y)
	}
	return x + y, nil
}

func isAddOverflow(left, right int64) bool {
	if right > 0 {
		return left > math.MaxInt64-right
	}
	return left < math.MinInt64-right
}

func isMulOverflow(left, right int64) bool {
	if left == 0 || right == 0 {
		return false
	}
	if (left == -1 && right == math.MinInt64) || (right == -1 && left == math.MinInt64) {
		return true
	}
	p := left * right
	return p/right != left
}

func (c *Calculator) combineDecimal(op binaryOp, x, y *apd.Decimal) (num.Value, error) {
	res := new(apd.Decimal)
	var err error
	if op == opMul {
		_, err = c.decimal.Mul(res, x, y)
	} else {
		_, err = c.decimal.Add(res, x, y)
	}
	if err != nil {
		return nil, fmt.Errorf("decimal %s: %w", op, err)
	}
	return num.NewDecimal(res), nil
}

func asFloat(v num.Value) num.Float {
	switch x := v.(type) {
	case num.Int:
		return num.Float(x)
	case num.Float:
		return x
	}
	panic(fmt.Sprintf("asFloat: %s is not promotable to float", v.Kind()))
}

func asComplex(v num.Value) num.Complex {
	switch x := v.(type) {
	case num.Int:
		return num.Complex(complex(float64(x), 0))
	case num.Float:
		return num.Complex(complex(float64(x), 0))
	case num.Complex:
		return x
	}
	panic(fmt.Sprintf("asComplex: %s is not promotable to complex", v.Kind()))
}

func asDecimal(v num.Value) *apd.Decimal {
	switch x := v.(type) {
	case num.Int:
		return apd.New(int64(x), 0)
	case num.Decimal:
		return x.Apd()
	}
	panic(fmt.Sprintf("asDecimal: %s is not promotable to decimal", v.Kind()))
}
