package arith

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/arith/internal/num"
)

func TestKindOfWrapped(t *testing.T) {
	inner := &OperandError{Op: OpProduct, Position: 2, Reason: ReasonAbsent, Expected: num.Kinds()}
	wrapped := fmt.Errorf("evaluating call 3: %w", inner)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, InvalidOperand, kind)
	assert.True(t, IsInvalidOperand(wrapped))
	assert.False(t, IsComputationFailed(wrapped))

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsInvalidOperand(nil))
}

func TestComputationErrorUnwrap(t *testing.T) {
	err := newComputationError(OpRobustAdd, num.Int(1), nil, ErrIntegerOverflow)
	assert.ErrorIs(t, err, ErrIntegerOverflow)
	assert.Equal(t, ComputationFailed, err.Kind())
	assert.Equal(t, "absent", err.RightKind)
	assert.Equal(t, "robust_add: cannot combine int 1 and absent none: integer overflow", err.Error())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "first", Position(1).String())
	assert.Equal(t, "second", Position(2).String())
	assert.Equal(t, "third", Position(3).String())
	assert.Equal(t, "operand 4", Position(4).String())
}

func TestOperandErrorMessages(t *testing.T) {
	tests := []struct {
		err  *OperandError
		want string
	}{
		{
			&OperandError{Op: "robust_add", Position: 1, Reason: ReasonAbsent, Expected: num.Kinds()},
			"robust_add: first operand is absent; expected int, float, complex or decimal",
		},
		{
			&OperandError{Op: "product", Position: 2, Reason: ReasonOutOfRange, Actual: "uint64", Repr: "0xffffffffffffffff", Expected: num.Kinds()},
			"product: second operand 0xffffffffffffffff (uint64) is out of range; expected int, float, complex or decimal",
		},
		{
			&OperandError{Op: "x", Position: 1, Reason: ReasonUnsupported, Actual: "bool", Repr: "true", Expected: []num.Kind{num.KindInt}},
			"x: first operand has unsupported kind bool (value true); expected int",
		},
		{
			&OperandError{Op: "x", Position: 1, Reason: ReasonUnsupported, Actual: "bool", Repr: "true"},
			"x: first operand has unsupported kind bool (value true); expected nothing",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
