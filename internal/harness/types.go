package harness

import (
	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// TraceEvent records one call made while running a scenario.
type TraceEvent struct {
	Seq    int64
	Op     string
	Args   []any
	Result num.Value
	Err    error
}

// Failed reports whether the call returned an error.
func (e TraceEvent) Failed() bool { return e.Err != nil }

// ErrorKind returns the kind of the call's error, or "" when it succeeded or
// failed without a kind.
func (e TraceEvent) ErrorKind() arith.ErrorKind {
	kind, _ := arith.KindOf(e.Err)
	return kind
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool

	// RunID tags the run; fixed per scenario so traces are reproducible.
	RunID string

	// Trace holds one event per case, in order.
	Trace []TraceEvent

	// Errors holds expectation and assertion failures. Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event for a completed call.
func (r *Result) AddTrace(op string, args []any, result num.Value, err error) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:    int64(len(r.Trace) + 1),
		Op:     op,
		Args:   args,
		Result: result,
		Err:    err,
	})
}
