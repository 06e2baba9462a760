package batch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// Outcome is the result of one call. Exactly one of Result and Err is set.
type Outcome struct {
	Index  int
	Call   Call
	Result num.Value
	Err    error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Report collects the outcomes of one batch evaluation.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

// Failed returns the number of calls that returned an error.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Evaluator runs batches against a Calculator.
type Evaluator struct {
	calc *arith.Calculator
	ids  RunIDGenerator
	log  logrus.FieldLogger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithRunIDGenerator replaces the UUIDv7 run ID generator.
func WithRunIDGenerator(g RunIDGenerator) EvaluatorOption {
	return func(e *Evaluator) { e.ids = g }
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(log logrus.FieldLogger) EvaluatorOption {
	return func(e *Evaluator) { e.log = log }
}

// NewEvaluator creates an Evaluator. A nil calc uses arith.Default().
func NewEvaluator(calc *arith.Calculator, opts ...EvaluatorOption) *Evaluator {
	if calc == nil {
		calc = arith.Default()
	}
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)

	e := &Evaluator{calc: calc, ids: UUIDv7Generator{}, log: discard}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs every call in order. Operation errors are recorded in the
// report, never returned; the returned error is non-nil only when ctx is
// cancelled before the batch completes.
func (e *Evaluator) Evaluate(ctx context.Context, b *Batch) (*Report, error) {
	report := &Report{RunID: e.ids.Generate()}
	log := e.log.WithFields(logrus.Fields{"run_id": report.RunID, "batch": b.Path})
	log.WithField("calls", len(b.Calls)).Debug("evaluating batch")

	for i, call := range b.Calls {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch %s cancelled after %d calls: %w", b.Path, i, err)
		}

		result, err := e.calc.Call(call.Op, call.Args...)
		outcome := Outcome{Index: i, Call: call, Result: result, Err: err}
		report.Outcomes = append(report.Outcomes, outcome)

		entry := log.WithFields(logrus.Fields{"index": i, "op": call.Op})
		if err != nil {
			kind, _ := arith.KindOf(err)
			entry.WithField("error_kind", kind).Debug(err.Error())
			continue
		}
		entry.WithField("result", result.String()).Debug("call succeeded")
	}
	return report, nil
}
