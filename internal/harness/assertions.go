package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Failed() {
			fmt.Fprintf(&buf, "  [%d] %s %v -> error: %v\n", event.Seq, event.Op, formatArgs(event.Args), event.Err)
			continue
		}
		fmt.Fprintf(&buf, "  [%d] %s %v -> %s %s\n", event.Seq, event.Op, formatArgs(event.Args), event.Result.Kind(), event.Result)
	}

	return buf.String()
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "none"
			continue
		}
		parts[i] = fmt.Sprint(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// assertAllPass checks that no call returned an error.
func assertAllPass(trace []TraceEvent) error {
	for _, event := range trace {
		if event.Failed() {
			return &AssertionError{
				Type:     AssertAllPass,
				Expected: "every case to succeed",
				Actual:   fmt.Sprintf("case %d failed: %v", event.Seq-1, event.Err),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertErrorCount checks that exactly assertion.Count calls returned an error.
func assertErrorCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Failed() {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertErrorCount,
			Expected: fmt.Sprintf("%d failed cases", assertion.Count),
			Actual:   fmt.Sprintf("%d failed cases", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertResultKind checks the result kind of one case.
func assertResultKind(trace []TraceEvent, assertion Assertion) error {
	if assertion.Case < 0 || assertion.Case >= len(trace) {
		return fmt.Errorf("result_kind: case %d out of range (%d cases)", assertion.Case, len(trace))
	}

	event := trace[assertion.Case]
	expected := fmt.Sprintf("case %d to produce %s", assertion.Case, assertion.Kind)
	if event.Failed() {
		return &AssertionError{
			Type:     AssertResultKind,
			Expected: expected,
			Actual:   fmt.Sprintf("error: %v", event.Err),
			Trace:    trace,
		}
	}
	if got := event.Result.Kind().String(); got != assertion.Kind {
		return &AssertionError{
			Type:     AssertResultKind,
			Expected: expected,
			Actual:   got,
			Trace:    trace,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertAllPass:
			err = assertAllPass(result.Trace)
		case AssertErrorCount:
			err = assertErrorCount(result.Trace, assertion)
		case AssertResultKind:
			err = assertResultKind(result.Trace, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
