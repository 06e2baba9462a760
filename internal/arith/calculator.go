package arith

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/arith/internal/num"
)

// DefaultDecimalPrecision is the number of significant digits kept by
// decimal results unless configured otherwise.
const DefaultDecimalPrecision = 28

// Calculator performs the validated operations with a fixed decimal context.
// The package-level functions use a Calculator with the default context.
//
// Thread-safety: a Calculator is immutable after construction and safe for
// concurrent use.
type Calculator struct {
	decimal *apd.Context
}

// Option configures a Calculator.
type Option func(*apd.Context)

// WithDecimalPrecision sets the number of significant digits of decimal results.
// Zero keeps the default.
func WithDecimalPrecision(p uint32) Option {
	return func(c *apd.Context) {
		if p > 0 {
			c.Precision = p
		}
	}
}

// WithDecimalRounding sets the rounding mode of decimal results.
// An empty rounder keeps the default (half-even).
func WithDecimalRounding(r apd.Rounder) Option {
	return func(c *apd.Context) {
		if r != "" {
			c.Rounding = r
		}
	}
}

// NewCalculator creates a Calculator. Without options decimals round to 28
// significant digits, half-even, and invalid decimal operations are errors.
func NewCalculator(opts ...Option) *Calculator {
	ctx := apd.BaseContext.WithPrecision(DefaultDecimalPrecision)
	ctx.Rounding = apd.RoundHalfEven
	for _, opt := range opts {
		opt(ctx)
	}
	return &Calculator{decimal: ctx}
}

// DecimalPrecision returns the configured decimal precision.
func (c *Calculator) DecimalPrecision() uint32 { return c.decimal.Precision }

// DecimalRounding returns the configured decimal rounding mode.
func (c *Calculator) DecimalRounding() apd.Rounder { return c.decimal.Rounding }

var defaultCalculator = NewCalculator()

// Default returns the Calculator used by the package-level functions.
func Default() *Calculator { return defaultCalculator }

// RobustAdd validates a and b and returns their sum.
func RobustAdd(a, b any) (num.Value, error) { return defaultCalculator.RobustAdd(a, b) }

// RobustAdd3 validates a, b and c and returns (a + b) + c.
func RobustAdd3(a, b, c any) (num.Value, error) { return defaultCalculator.RobustAdd3(a, b, c) }

// Product validates a and b and returns their product.
func Product(a, b any) (num.Value, error) { return defaultCalculator.Product(a, b) }
