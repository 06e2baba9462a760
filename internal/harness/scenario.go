package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cases are executed in order.
	Cases []Case `yaml:"cases"`

	// Assertions validate the whole trace after all cases ran.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run ID. If empty, testutil.DefaultRunID is
	// used so golden files stay stable.
	RunID string `yaml:"run_id,omitempty"`
}

// Case is one operation call.
type Case struct {
	// Op is the registered operation name, e.g. "robust_add".
	Op string `yaml:"op"`

	// Args are the operands in order.
	Args []Operand `yaml:"args"`

	// Expect is the expected outcome. If nil, the outcome is only traced.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a case: either a result (Kind and
// Value) or an error (Error and, for InvalidOperand, Position).
type Expect struct {
	// Kind is the expected result kind: int, float, complex or decimal.
	Kind string `yaml:"kind,omitempty"`

	// Value is the expected result in the kind's text form, e.g. "7.5",
	// "(2+4i)", "NaN". Compared with num.Identical, so NaN matches NaN.
	Value string `yaml:"value,omitempty"`

	// Error is the expected error kind: INVALID_OPERAND or COMPUTATION_FAILED.
	Error string `yaml:"error,omitempty"`

	// Position is the expected 1-based position of an invalid operand.
	// Zero skips the check.
	Position int `yaml:"position,omitempty"`

	// Reason optionally pins the invalid-operand reason, e.g. "absent".
	Reason string `yaml:"reason,omitempty"`
}

// Operand is a scenario operand decoded from a YAML scalar.
type Operand struct {
	Value any
}

// YAML tags for operands that have no plain YAML scalar form.
const (
	TagDecimal = "!decimal"
	TagComplex = "!complex"
)

// UnmarshalYAML decodes a scalar node into an operand value.
func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: operand must be a scalar", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		o.Value = nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("line %d: int operand: %w", node.Line, err)
		}
		o.Value = num.Int(n)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: float operand: %w", node.Line, err)
		}
		o.Value = num.Float(f)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: bool operand: %w", node.Line, err)
		}
		o.Value = b
	case "!!str":
		o.Value = node.Value
	case TagDecimal:
		v, err := num.Parse(num.KindDecimal, node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		o.Value = v
	case TagComplex:
		v, err := num.Parse(num.KindComplex, node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		o.Value = v
	default:
		return fmt.Errorf("line %d: unsupported operand tag %s", node.Line, node.Tag)
	}
	return nil
}

// Values returns the operand values of a case in order.
func (c Case) Values() []any {
	values := make([]any, len(c.Args))
	for i, a := range c.Args {
		values[i] = a.Value
	}
	return values
}

// Assertion validates the trace of a whole scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "all_pass": no case returned an error
	// - "error_count": exactly Count cases returned an error
	// - "result_kind": case Case (0-based) produced a result of kind Kind
	Type string `yaml:"type"`

	// Count is the expected number of failed cases (error_count).
	Count int `yaml:"count,omitempty"`

	// Case is the 0-based case index (result_kind).
	Case int `yaml:"case,omitempty"`

	// Kind is the expected result kind (result_kind).
	Kind string `yaml:"kind,omitempty"`
}

// Assertion type constants.
const (
	AssertAllPass    = "all_pass"
	AssertErrorCount = "error_count"
	AssertResultKind = "result_kind"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Op == "" {
			return fmt.Errorf("cases[%d]: op is required", i)
		}
		if _, ok := arith.Lookup(c.Op); !ok {
			return fmt.Errorf("cases[%d]: unknown operation %q", i, c.Op)
		}
		if c.Expect != nil {
			if err := validateExpect(c.Expect); err != nil {
				return fmt.Errorf("cases[%d].expect: %w", i, err)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, len(s.Cases)); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(e *Expect) error {
	switch {
	case e.Error != "" && e.Kind != "":
		return fmt.Errorf("error and kind are mutually exclusive")
	case e.Error != "":
		if e.Error != string(arith.InvalidOperand) && e.Error != string(arith.ComputationFailed) {
			return fmt.Errorf("unknown error kind %q", e.Error)
		}
		if e.Position < 0 {
			return fmt.Errorf("position must be non-negative")
		}
		if (e.Position != 0 || e.Reason != "") && e.Error != string(arith.InvalidOperand) {
			return fmt.Errorf("position and reason apply only to %s", arith.InvalidOperand)
		}
	case e.Kind != "":
		kind, ok := num.ParseKind(e.Kind)
		if !ok {
			return fmt.Errorf("unknown kind %q", e.Kind)
		}
		if e.Value == "" {
			return fmt.Errorf("value is required with kind")
		}
		if _, err := num.Parse(kind, e.Value); err != nil {
			return err
		}
		if e.Position != 0 || e.Reason != "" {
			return fmt.Errorf("position and reason apply only to errors")
		}
	default:
		return fmt.Errorf("either kind or error is required")
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, cases int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertAllPass:
	case AssertErrorCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for error_count", index)
		}
	case AssertResultKind:
		if a.Case < 0 || a.Case >= cases {
			return fmt.Errorf("assertions[%d]: case %d out of range for result_kind", index, a.Case)
		}
		if _, ok := num.ParseKind(a.Kind); !ok {
			return fmt.Errorf("assertions[%d]: unknown kind %q for result_kind", index, a.Kind)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
