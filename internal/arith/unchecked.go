package arith

import (
	"github.com/roach88/arith/internal/num"
)

// Number is the set of Go types with native + and *.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Add returns a + b with native semantics: no validation, integer overflow wraps.
func Add[T Number](a, b T) T {
	return a + b
}

// Add3 returns a + b + c with native semantics.
func Add3[T Number](a, b, c T) T {
	return a + b + c
}

// AddValues adds two values without validation.
// Panics with a *ComputationError if the kinds cannot be combined, an
// operand is nil, or an int sum overflows.
func AddValues(a, b num.Value) num.Value {
	res, err := defaultCalculator.apply(OpAdd, opAdd, a, b)
	if err != nil {
		panic(err)
	}
	return res
}

// Add3Values adds three values left to right without validation.
// Panics like AddValues.
func Add3Values(a, b, c num.Value) num.Value {
	res, err := defaultCalculator.fold(OpAdd3, opAdd, []num.Value{a, b, c})
	if err != nil {
		panic(err)
	}
	return res
}
