package harness

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
	"github.com/roach88/arith/internal/testutil"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRun_ScenarioFiles(t *testing.T) {
	for _, name := range []string{"basic_sums", "nan_policy", "invalid_operands", "computation_failed"} {
		t.Run(name, func(t *testing.T) {
			result, err := Run(loadTestScenario(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_RunID(t *testing.T) {
	result, err := Run(loadTestScenario(t, "basic_sums"))
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultRunID, result.RunID)

	result, err = Run(loadTestScenario(t, "computation_failed"))
	require.NoError(t, err)
	assert.Equal(t, "run-computation-failed", result.RunID)
}

func TestRun_Trace(t *testing.T) {
	result, err := Run(loadTestScenario(t, "basic_sums"))
	require.NoError(t, err)

	require.Len(t, result.Trace, 5)
	for i, event := range result.Trace {
		assert.Equal(t, int64(i+1), event.Seq)
	}
	assert.Equal(t, num.Int(5), result.Trace[0].Result)
	assert.True(t, result.Trace[4].Failed())
	assert.Equal(t, arith.InvalidOperand, result.Trace[4].ErrorKind())
	assert.Equal(t, arith.ErrorKind(""), result.Trace[0].ErrorKind())
}

func TestRun_ExpectationMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "every expectation is wrong",
		Cases: []Case{
			{Op: "robust_add", Args: []Operand{{num.Int(2)}, {num.Int(3)}}, Expect: &Expect{Kind: "int", Value: "6"}},
			{Op: "robust_add", Args: []Operand{{num.Int(2)}, {num.Int(3)}}, Expect: &Expect{Kind: "float", Value: "5"}},
			{Op: "robust_add", Args: []Operand{{num.Int(2)}, {num.Int(3)}}, Expect: &Expect{Error: "INVALID_OPERAND"}},
			{Op: "robust_add", Args: []Operand{{nil}, {num.Int(3)}}, Expect: &Expect{Kind: "int", Value: "3"}},
			{Op: "robust_add", Args: []Operand{{nil}, {num.Int(3)}}, Expect: &Expect{Error: "COMPUTATION_FAILED"}},
			{Op: "robust_add", Args: []Operand{{nil}, {num.Int(3)}}, Expect: &Expect{Error: "INVALID_OPERAND", Position: 2}},
			{Op: "robust_add", Args: []Operand{{nil}, {num.Int(3)}}, Expect: &Expect{Error: "INVALID_OPERAND", Reason: "out_of_range"}},
		},
		Assertions: []Assertion{{Type: AssertErrorCount, Count: 4}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 7)

	assert.Equal(t, "cases[0] robust_add: expected int 6, got int 5", result.Errors[0])
	assert.Equal(t, "cases[1] robust_add: expected float 5.0, got int 5", result.Errors[1])
	assert.Equal(t, "cases[2] robust_add: expected INVALID_OPERAND error, got int 5", result.Errors[2])
	assert.Contains(t, result.Errors[3], "expected int 3, got error: robust_add: first operand is absent")
	assert.Contains(t, result.Errors[4], "expected COMPUTATION_FAILED error, got robust_add: first operand is absent")
	assert.Contains(t, result.Errors[5], "expected invalid operand at position 2, got 1")
	assert.Contains(t, result.Errors[6], "expected reason out_of_range, got absent")
}

func TestRun_NaNExpectationMatchesNaN(t *testing.T) {
	result, err := Run(loadTestScenario(t, "nan_policy"))
	require.NoError(t, err)
	for _, event := range result.Trace {
		assert.True(t, num.IsNaN(event.Result))
	}
}

func TestRun_InvalidScenario(t *testing.T) {
	_, err := Run(&Scenario{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestHarness_WithCalculator(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: precision
description: precision comes from the calculator
cases:
  - op: product
    args: [!decimal "1.25", 1]
    expect: {kind: decimal, value: "1.2"}
assertions:
  - type: all_pass
`))
	require.NoError(t, err)

	result, err := New(WithCalculator(arith.NewCalculator(arith.WithDecimalPrecision(2)))).Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	result, err = Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass, "default precision keeps 1.25")
}

func TestHarness_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	_, err := New(WithLogger(log)).Run(loadTestScenario(t, "basic_sums"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "scenario=basic_sums")
	assert.Contains(t, out, "case succeeded")
	assert.Contains(t, out, "case failed")
	assert.Contains(t, out, "scenario finished")
}
