package arith

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/arith/internal/num"
)

// ErrorKind categorizes arithmetic errors so callers can branch without
// parsing messages.
type ErrorKind string

const (
	// InvalidOperand indicates an operand was absent, of an unsupported kind,
	// or the operation was called with the wrong number of operands.
	// Always detected before computation.
	InvalidOperand ErrorKind = "INVALID_OPERAND"

	// ComputationFailed indicates two valid operands could not be combined.
	ComputationFailed ErrorKind = "COMPUTATION_FAILED"
)

// Low-level causes wrapped by ComputationError.
var (
	ErrIncompatibleKinds = errors.New("incompatible kinds")
	ErrIntegerOverflow   = errors.New("integer overflow")
)

// Position identifies an operand by its 1-based position.
// The zero Position means the error concerns the operand list as a whole.
type Position int

var positionNames = []string{"", "first", "second", "third"}

func (p Position) String() string {
	if p > 0 && int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("operand %d", int(p))
}

// OperandReason says why an operand was rejected.
type OperandReason string

const (
	ReasonAbsent      OperandReason = "absent"
	ReasonUnsupported OperandReason = "unsupported_kind"
	ReasonOutOfRange  OperandReason = "out_of_range"
	ReasonArity       OperandReason = "arity"
)

// OperandError is the InvalidOperand error.
type OperandError struct {
	// Op is the operation name (e.g. "robust_add").
	Op string

	// Position of the offending operand; zero for arity errors.
	Position Position

	Reason OperandReason

	// Actual is the operand's runtime kind ("string", "bool", "absent", "*int").
	Actual string

	// Repr is the operand rendered with %#v. Empty for absent operands.
	Repr string

	// Expected lists the accepted kinds.
	Expected []num.Kind

	// Arity fields are set when Reason is ReasonArity.
	WantOperands int
	GotOperands  int
}

// Kind implements the kinded error contract.
func (e *OperandError) Kind() ErrorKind { return InvalidOperand }

func (e *OperandError) Error() string {
	switch e.Reason {
	case ReasonArity:
		return fmt.Sprintf("%s: expected %d operands, got %d", e.Op, e.WantOperands, e.GotOperands)
	case ReasonAbsent:
		return fmt.Sprintf("%s: %s operand is absent; expected %s",
			e.Op, e.Position, expectedList(e.Expected))
	case ReasonOutOfRange:
		return fmt.Sprintf("%s: %s operand %s (%s) is out of range; expected %s",
			e.Op, e.Position, e.Repr, e.Actual, expectedList(e.Expected))
	default:
		return fmt.Sprintf("%s: %s operand has unsupported kind %s (value %s); expected %s",
			e.Op, e.Position, e.Actual, e.Repr, expectedList(e.Expected))
	}
}

// ComputationError is the ComputationFailed error.
type ComputationError struct {
	Op    string
	Left  string // operand repr
	Right string
	// LeftKind and RightKind are the operand kind names.
	LeftKind  string
	RightKind string
	Err       error
}

// Kind implements the kinded error contract.
func (e *ComputationError) Kind() ErrorKind { return ComputationFailed }

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: cannot combine %s %s and %s %s: %v",
		e.Op, e.LeftKind, e.Left, e.RightKind, e.Right, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

func newComputationError(op string, a, b num.Value, err error) *ComputationError {
	return &ComputationError{
		Op:        op,
		Left:      valueRepr(a),
		Right:     valueRepr(b),
		LeftKind:  kindName(a),
		RightKind: kindName(b),
		Err:       err,
	}
}

// KindOf returns the ErrorKind of err or of any error it wraps.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) (ErrorKind, bool) {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind(), true
	}
	return "", false
}

// IsInvalidOperand returns true if err is an InvalidOperand error.
func IsInvalidOperand(err error) bool {
	k, ok := KindOf(err)
	return ok && k == InvalidOperand
}

// IsComputationFailed returns true if err is a ComputationFailed error.
func IsComputationFailed(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ComputationFailed
}

func expectedList(kinds []num.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}

func kindName(v num.Value) string {
	if v == nil {
		return "absent"
	}
	return v.Kind().String()
}

func valueRepr(v num.Value) string {
	if v == nil {
		return "none"
	}
	return v.String()
}
