package num

import (
	"math"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValueSealed verifies every kind implements the sealed interface.
func TestValueSealed(t *testing.T) {
	dec, err := ParseDecimal("0.1")
	require.NoError(t, err)

	values := []Value{Int(1), Float(1.5), Complex(1 + 2i), dec}
	kinds := []Kind{KindInt, KindFloat, KindComplex, KindDecimal}

	for i, v := range values {
		assert.Equal(t, kinds[i], v.Kind())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInt, "int"},
		{KindFloat, "float"},
		{KindComplex, "complex"},
		{KindDecimal, "decimal"},
		{Kind(0), "kind(0)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	_, ok := ParseKind("string")
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	dec, err := ParseDecimal("0.30")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"int", Int(-42), "-42"},
		{"integral float", Float(10), "10.0"},
		{"float", Float(2.5), "2.5"},
		{"float exponent", Float(1e21), "1e+21"},
		{"nan", Float(math.NaN()), "NaN"},
		{"inf", Float(math.Inf(1)), "+Inf"},
		{"neg inf", Float(math.Inf(-1)), "-Inf"},
		{"complex", Complex(1 + 2i), "(1+2i)"},
		{"decimal keeps exponent", dec, "0.30"},
		{"zero decimal", Decimal{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestNewDecimalCopies(t *testing.T) {
	src := apd.New(15, -1)
	d := NewDecimal(src)
	src.SetInt64(99)

	assert.Equal(t, "1.5", d.String())

	out := d.Apd()
	out.SetInt64(7)
	assert.Equal(t, "1.5", d.String())
}

func TestSpecialValues(t *testing.T) {
	nanDec, err := ParseDecimal("NaN")
	require.NoError(t, err)
	infDec, err := ParseDecimal("Infinity")
	require.NoError(t, err)

	assert.True(t, IsNaN(Float(math.NaN())))
	assert.True(t, IsNaN(Complex(complex(math.NaN(), 0))))
	assert.True(t, IsNaN(nanDec))
	assert.False(t, IsNaN(Int(0)))

	assert.True(t, IsInf(Float(math.Inf(-1))))
	assert.True(t, IsInf(infDec))
	assert.False(t, IsInf(Float(math.NaN())))
	assert.False(t, IsInf(Int(math.MaxInt64)))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(Int(0)))
	assert.True(t, IsZero(Float(0)))
	assert.True(t, IsZero(Complex(0)))
	assert.True(t, IsZero(Decimal{}))
	assert.False(t, IsZero(Float(math.NaN())))
	assert.False(t, IsZero(Int(1)))
}

func TestIdentical(t *testing.T) {
	a, _ := ParseDecimal("0.3")
	b, _ := ParseDecimal("0.30")
	nan1, _ := ParseDecimal("NaN")

	tests := []struct {
		name string
		x, y Value
		want bool
	}{
		{"same int", Int(3), Int(3), true},
		{"different kind", Int(3), Float(3), false},
		{"nan float", Float(math.NaN()), Float(math.NaN()), true},
		{"nan vs number", Float(math.NaN()), Float(1), false},
		{"decimal scale", a, b, true},
		{"decimal nan", nan1, nan1, true},
		{"decimal nan vs number", nan1, a, false},
		{"complex nan", Complex(complex(math.NaN(), 1)), Complex(complex(math.NaN(), 1)), true},
		{"both nil", nil, nil, true},
		{"one nil", nil, Int(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identical(tt.x, tt.y))
		})
	}
}
