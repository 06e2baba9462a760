// Package batch evaluates lists of arithmetic calls written in CUE.
//
// A batch file declares its calls under a top-level "calls" list:
//
//	calls: [
//		{op: "product", args: [2.5, 4]},
//		{op: "robust_add", args: [null, 5]},
//		{op: "robust_add", args: [{decimal: "0.1"}, {decimal: "0.2"}]},
//		{op: "product", args: [{complex: [1, 2]}, 2]},
//	]
//
// CUE ints become int operands, floats become float operands and null is an
// absent operand. Strings and bools are passed through unchanged so the
// validated operations can reject them. Decimal and complex operands use the
// {decimal: string} and {complex: [re, im]} forms.
//
// The file is unified with a schema before evaluation, so unknown operations
// and malformed operands are reported with their source position.
package batch
