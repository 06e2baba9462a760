package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// GoldenDir is where RunWithGolden keeps its fixtures, relative to the
// package under test.
const GoldenDir = "testdata/golden"

// Snapshot encodes a scenario trace as canonical JSON. Equal traces encode
// to identical bytes, which is what golden comparison relies on.
func Snapshot(name string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		args := make([]any, len(event.Args))
		copy(args, event.Args)

		eventMap := map[string]any{
			"seq":  event.Seq,
			"op":   event.Op,
			"args": args,
		}
		if event.Failed() {
			errMap := map[string]any{"message": event.Err.Error()}
			if kind, ok := arith.KindOf(event.Err); ok {
				errMap["kind"] = string(kind)
			}
			eventMap["error"] = errMap
		} else {
			eventMap["result"] = event.Result
		}
		trace[i] = eventMap
	}

	return num.MarshalCanonical(map[string]any{
		"scenario_name": name,
		"run_id":        result.RunID,
		"trace":         trace,
	})
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
