package arith

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/arith/internal/num"
)

// operands runs presence checks on every operand, then kind checks, and
// returns the lifted values. The first failure wins.
func operands(op string, raw ...any) ([]num.Value, error) {
	for i, x := range raw {
		if isAbsent(x) {
			return nil, &OperandError{
				Op:       op,
				Position: Position(i + 1),
				Reason:   ReasonAbsent,
				Actual:   "absent",
				Expected: num.Kinds(),
			}
		}
	}

	vals := make([]num.Value, len(raw))
	for i, x := range raw {
		v, reason := lift(x)
		if reason != "" {
			return nil, &OperandError{
				Op:       op,
				Position: Position(i + 1),
				Reason:   reason,
				Actual:   typeName(x),
				Repr:     fmt.Sprintf("%#v", x),
				Expected: num.Kinds(),
			}
		}
		// NaN and infinite floats pass: they propagate through the arithmetic.
		vals[i] = v
	}
	return vals, nil
}

func checkArity(op string, want int, raw []any) error {
	if len(raw) != want {
		return &OperandError{
			Op:           op,
			Reason:       ReasonArity,
			Expected:     num.Kinds(),
			WantOperands: want,
			GotOperands:  len(raw),
		}
	}
	return nil
}

func isAbsent(x any) bool {
	switch v := x.(type) {
	case nil:
		return true
	case *apd.Decimal:
		return v == nil
	default:
		return false
	}
}

// lift maps a Go value onto the closed set of numeric kinds.
// A non-empty reason means the operand is rejected.
func lift(x any) (num.Value, OperandReason) {
	switch v := x.(type) {
	case num.Int:
		return v, ""
	case num.Float:
		return v, ""
	case num.Complex:
		return v, ""
	case num.Decimal:
		return v, ""
	case int:
		return num.Int(v), ""
	case int8:
		return num.Int(v), ""
	case int16:
		return num.Int(v), ""
	case int32:
		return num.Int(v), ""
	case int64:
		return num.Int(v), ""
	case uint:
		return liftUnsigned(uint64(v))
	case uint8:
		return num.Int(v), ""
	case uint16:
		return num.Int(v), ""
	case uint32:
		return num.Int(v), ""
	case uint64:
		return liftUnsigned(v)
	case float32:
		return num.Float(v), ""
	case float64:
		return num.Float(v), ""
	case complex64:
		return num.Complex(v), ""
	case complex128:
		return num.Complex(v), ""
	case *apd.Decimal:
		if v == nil {
			return nil, ReasonAbsent
		}
		return num.NewDecimal(v), ""
	case apd.Decimal:
		return num.NewDecimal(&v), ""
	case nil:
		return nil, ReasonAbsent
	default:
		return nil, ReasonUnsupported
	}
}

func liftUnsigned(u uint64) (num.Value, OperandReason) {
	if u > math.MaxInt64 {
		return nil, ReasonOutOfRange
	}
	return num.Int(int64(u)), ""
}

func typeName(x any) string {
	switch x.(type) {
	case nil:
		return "absent"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", x)
	}
}
