// Package arith implements validated addition and multiplication over num.Value.
//
// OPERATIONS:
//
// Unvalidated:
// Add and Add3 are generic over Go's native numeric types. Mixing operand
// types is a compile error, so there is nothing left to validate.
// AddValues and Add3Values do the same for num.Value and panic on a kind
// combination the arithmetic cannot perform.
//
// Validated:
// RobustAdd, RobustAdd3 and Product accept operands of any Go type and run
// the validation pipeline before computing:
//
//  1. Presence: every operand is non-nil (InvalidOperand names the position)
//  2. Kind: every operand lifts to int, float, complex or decimal
//  3. Compute: operands are promoted to a common kind and combined
//
// NaN and infinities are valid float operands and propagate per IEEE 754:
// NaN with anything is NaN, inf + finite is inf, inf + -inf is NaN.
//
// PROMOTION:
//
//	int     with int     -> int (overflow is ComputationFailed)
//	float   with int     -> float
//	complex with int     -> complex
//	complex with float   -> complex
//	decimal with int     -> decimal
//	decimal with decimal -> decimal
//	decimal with float   -> ComputationFailed
//	decimal with complex -> ComputationFailed
//
// Every call is a pure function of its operands and the Calculator's decimal
// context. Calculators are immutable and safe for concurrent use.
package arith
