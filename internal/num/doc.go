// Package num defines the closed set of numeric values accepted by arith.
//
// This package contains value definitions only. All other internal packages
// import num; num imports nothing internal.
//
// Key design constraints:
//   - Value is sealed: only Int, Float, Complex and Decimal implement it
//   - A nil Value is the absent marker and is never a valid operand
//   - Decimal wraps an immutable *apd.Decimal; callers never see the pointer
//   - Canonical JSON encodes values as {"kind","value"} so NaN and
//     infinities survive serialization
package num
