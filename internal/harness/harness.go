package harness

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/batch"
	"github.com/roach88/arith/internal/num"
	"github.com/roach88/arith/internal/testutil"
)

// Harness is the scenario execution engine.
// Runs use a fixed run ID so traces are reproducible.
type Harness struct {
	calc *arith.Calculator
	log  logrus.FieldLogger
}

// Option configures a Harness.
type Option func(*Harness)

// WithCalculator runs cases against calc instead of arith.Default().
func WithCalculator(calc *arith.Calculator) Option {
	return func(h *Harness) { h.calc = calc }
}

// WithLogger sets the logger used for per-case debug output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(h *Harness) { h.log = log }
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)

	h := &Harness{calc: arith.Default(), log: discard}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with the default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes every case in order, checks its expectation, then evaluates
// the scenario assertions. Failed expectations and assertions are recorded
// in the Result; the returned error is reserved for scenarios that are
// themselves invalid.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var ids batch.RunIDGenerator = testutil.NewFixedRunIDGenerator(scenario.RunID)
	result := NewResult(ids.Generate())
	log := h.log.WithFields(logrus.Fields{"scenario": scenario.Name, "run_id": result.RunID})

	for i, c := range scenario.Cases {
		args := c.Values()
		value, err := h.calc.Call(c.Op, args...)
		result.AddTrace(c.Op, args, value, err)

		if c.Expect != nil {
			if msg := checkExpect(c.Expect, value, err); msg != "" {
				result.AddError(fmt.Sprintf("cases[%d] %s: %s", i, c.Op, msg))
			}
		}

		entry := log.WithFields(logrus.Fields{"case": i, "op": c.Op})
		if err != nil {
			entry.WithField("error", err.Error()).Debug("case failed")
		} else {
			entry.WithField("result", value.String()).Debug("case succeeded")
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	log.WithFields(logrus.Fields{"pass": result.Pass, "errors": len(result.Errors)}).Debug("scenario finished")
	return result, nil
}

// checkExpect compares a call outcome with its expectation and returns a
// failure message, or "" when it matches.
func checkExpect(e *Expect, value num.Value, err error) string {
	if e.Error != "" {
		if err == nil {
			return fmt.Sprintf("expected %s error, got %s %s", e.Error, value.Kind(), value)
		}
		kind, _ := arith.KindOf(err)
		if string(kind) != e.Error {
			return fmt.Sprintf("expected %s error, got %v", e.Error, err)
		}

		var oe *arith.OperandError
		if !errors.As(err, &oe) {
			return ""
		}
		if e.Position != 0 && int(oe.Position) != e.Position {
			return fmt.Sprintf("expected invalid operand at position %d, got %d: %v", e.Position, int(oe.Position), err)
		}
		if e.Reason != "" && string(oe.Reason) != e.Reason {
			return fmt.Sprintf("expected reason %s, got %s: %v", e.Reason, oe.Reason, err)
		}
		return ""
	}

	if err != nil {
		return fmt.Sprintf("expected %s %s, got error: %v", e.Kind, e.Value, err)
	}

	kind, _ := num.ParseKind(e.Kind)
	want, parseErr := num.Parse(kind, e.Value)
	if parseErr != nil {
		return parseErr.Error()
	}
	if !num.Identical(value, want) {
		return fmt.Sprintf("expected %s %s, got %s %s", want.Kind(), want, value.Kind(), value)
	}
	return ""
}
