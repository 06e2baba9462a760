package num

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies the numeric kind carried by a Value.
type Kind uint8

const (
	// KindInt is a signed 64-bit integer.
	KindInt Kind = iota + 1
	// KindFloat is an IEEE 754 double.
	KindFloat
	// KindComplex is a pair of IEEE 754 doubles.
	KindComplex
	// KindDecimal is an arbitrary-precision decimal.
	KindDecimal
)

var kindNames = map[Kind]string{
	KindInt:     "int",
	KindFloat:   "float",
	KindComplex: "complex",
	KindDecimal: "decimal",
}

// String returns the lower-case kind name used in messages and JSON.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every supported kind in promotion order.
func Kinds() []Kind {
	return []Kind{KindInt, KindFloat, KindComplex, KindDecimal}
}

// Value is a sealed interface over the supported numeric kinds.
// Only Int, Float, Complex and Decimal implement it.
type Value interface {
	Kind() Kind
	String() string
	numValue() // Sealed
}

// Int is an integer value.
type Int int64

func (Int) numValue() {}

// Kind implements Value.
func (Int) Kind() Kind { return KindInt }

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

// Float is a floating-point value. NaN and infinities are valid.
type Float float64

func (Float) numValue() {}

// Kind implements Value.
func (Float) Kind() Kind { return KindFloat }

// String always renders a float distinguishably from an Int: 10 prints as "10.0".
func (v Float) String() string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// Complex is a complex value.
type Complex complex128

func (Complex) numValue() {}

// Kind implements Value.
func (Complex) Kind() Kind { return KindComplex }

func (v Complex) String() string {
	return strconv.FormatComplex(complex128(v), 'g', -1, 128)
}

// Decimal is an arbitrary-precision decimal value.
// The zero Decimal is 0.
type Decimal struct {
	d *apd.Decimal
}

func (Decimal) numValue() {}

// Kind implements Value.
func (Decimal) Kind() Kind { return KindDecimal }

func (v Decimal) String() string { return v.dec().String() }

// NewDecimal copies d into a Decimal. The caller may keep mutating d.
func NewDecimal(d *apd.Decimal) Decimal {
	return Decimal{d: new(apd.Decimal).Set(d)}
}

// ParseDecimal parses s with the decimal package's string syntax
// ("0.1", "-1.5E+3", "NaN", "Infinity").
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d: d}, nil
}

// Apd returns a copy of the underlying decimal.
func (v Decimal) Apd() *apd.Decimal {
	return new(apd.Decimal).Set(v.dec())
}

func (v Decimal) dec() *apd.Decimal {
	if v.d == nil {
		return new(apd.Decimal)
	}
	return v.d
}

// IsNaN reports whether v is a floating-point, complex or decimal NaN.
func IsNaN(v Value) bool {
	switch x := v.(type) {
	case Float:
		return math.IsNaN(float64(x))
	case Complex:
		return cmplx.IsNaN(complex128(x))
	case Decimal:
		f := x.dec().Form
		return f == apd.NaN || f == apd.NaNSignaling
	default:
		return false
	}
}

// IsInf reports whether v is infinite and not NaN.
func IsInf(v Value) bool {
	switch x := v.(type) {
	case Float:
		return math.IsInf(float64(x), 0)
	case Complex:
		return cmplx.IsInf(complex128(x))
	case Decimal:
		return x.dec().Form == apd.Infinite
	default:
		return false
	}
}

// IsZero reports whether v is a zero of its kind.
func IsZero(v Value) bool {
	switch x := v.(type) {
	case Int:
		return x == 0
	case Float:
		return x == 0
	case Complex:
		return x == 0
	case Decimal:
		return x.dec().Form == apd.Finite && x.dec().IsZero()
	default:
		return false
	}
}

// Identical reports whether a and b have the same kind and the same value.
// Unlike ==, NaN is identical to NaN of the same kind and decimals compare
// numerically (0.30 is identical to 0.3).
func Identical(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Int:
		return x == b.(Int)
	case Float:
		y := b.(Float)
		if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
			return math.IsNaN(float64(x)) && math.IsNaN(float64(y))
		}
		return x == y
	case Complex:
		y := b.(Complex)
		return sameFloat(real(x), real(y)) && sameFloat(imag(x), imag(y))
	case Decimal:
		xd, yd := x.dec(), b.(Decimal).dec()
		if IsNaN(x) || IsNaN(b) {
			return IsNaN(x) && IsNaN(b)
		}
		return xd.Cmp(yd) == 0
	default:
		return false
	}
}

func sameFloat(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) && math.IsNaN(y)
	}
	return x == y
}
