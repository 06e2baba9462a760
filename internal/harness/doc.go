// Package harness runs YAML conformance scenarios against the arithmetic
// operations.
//
// A scenario lists cases, each naming an operation, its operands and the
// expected outcome, followed by scenario-level assertions:
//
//	name: decimal_sums
//	description: Decimal addition stays exact
//	cases:
//	  - op: robust_add
//	    args: [!decimal "0.1", !decimal "0.2"]
//	    expect: {kind: decimal, value: "0.3"}
//	  - op: robust_add
//	    args: [null, 5]
//	    expect: {error: INVALID_OPERAND, position: 1}
//	assertions:
//	  - type: error_count
//	    count: 1
//
// Operands are YAML scalars: ints, floats (including .nan and .inf), null for
// an absent operand, and strings or bools to exercise validation. Decimal and
// complex operands use the !decimal and !complex tags.
//
// Every run records a trace of the calls it made. The trace encodes to
// canonical JSON, so RunWithGolden can compare it byte for byte against
// testdata/golden/<name>.golden.
package harness
