package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arith/internal/num"
)

func TestOperations(t *testing.T) {
	ops := Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	assert.Equal(t, []string{"add", "add3", "robust_add", "robust_add3", "product"}, names)

	ops[0].Name = "mutated"
	op, ok := Lookup(OpAdd)
	require.True(t, ok)
	assert.Equal(t, "add", op.Name)
	assert.False(t, op.Validated)
}

func TestCall(t *testing.T) {
	c := Default()

	tests := []struct {
		op   string
		args []any
		want num.Value
	}{
		{OpAdd, []any{num.Int(1), num.Int(2)}, num.Int(3)},
		{OpAdd3, []any{1, 2, 3}, num.Int(6)},
		{OpRobustAdd, []any{5, 2.5}, num.Float(7.5)},
		{OpRobustAdd3, []any{1, 1, 1.5}, num.Float(3.5)},
		{OpProduct, []any{5, 3}, num.Int(15)},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := c.Call(tt.op, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallUnknownOperation(t *testing.T) {
	_, err := Default().Call("divide", 1, 2)
	require.ErrorIs(t, err, ErrUnknownOperation)
	_, isKinded := KindOf(err)
	assert.False(t, isKinded)
}

func TestCallArity(t *testing.T) {
	_, err := Default().Call(OpProduct, 1)
	require.Error(t, err)

	var oe *OperandError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, ReasonArity, oe.Reason)
	assert.Equal(t, Position(0), oe.Position)
	assert.Equal(t, "product: expected 2 operands, got 1", err.Error())

	_, err = Default().Call(OpAdd3, 1, 2)
	assert.True(t, IsInvalidOperand(err))
}

func TestCallUnvalidatedSurfacesComputationFailed(t *testing.T) {
	_, err := Default().Call(OpAdd, "x", 5)
	require.Error(t, err)
	assert.True(t, IsComputationFailed(err))

	var ce *ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "string", ce.LeftKind)
	assert.Equal(t, "int", ce.RightKind)
	assert.Equal(t, `add: cannot combine string "x" and int 5: incompatible kinds: cannot add string and int`, err.Error())

	_, err = Default().Call(OpAdd3, 1, 2, nil)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "absent", ce.RightKind)
	assert.Equal(t, "none", ce.Right)
}
