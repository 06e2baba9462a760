package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/arith/internal/arith"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation or scenario failure
	ExitCommandError = 2 // Command error (bad literal, missing file, invalid flag)
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeGeneric           = "E001" // Generic/unknown error
	ErrCodeInvalidLiteral    = "E002" // Operand text could not be parsed
	ErrCodeNotFound          = "E003" // Path not found
	ErrCodeLoadFailed        = "E004" // Batch or scenario could not be loaded
	ErrCodeWriteFailed       = "E005" // File write error
	ErrCodeInvalidOperand    = "E101" // arith.InvalidOperand
	ErrCodeComputationFailed = "E102" // arith.ComputationFailed
	ErrCodeUnknownOperation  = "E103" // arith.ErrUnknownOperation
	ErrCodeBatchFailed       = "E_BATCH_FAILED"
	ErrCodeTestFailed        = "E_TEST_FAILED"
)

// ExitError represents an error with a specific exit code.
// Commands report the error through the OutputFormatter before returning an
// ExitError, so callers only need the code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// HandleError reports an error returned by Execute and returns the process
// exit code. ExitErrors were already reported by the failing command; any
// other error (unknown flag, wrong argument count, invalid configuration)
// is written to w and treated as a command error.
func HandleError(err error, w io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`           // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`   // success payload
	Error  *CLIError   `json:"error,omitempty"`  // error details
	RunID  string      `json:"run_id,omitempty"` // batch run correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E101", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// OperationErrorDetails describes an arithmetic error in JSON output.
type OperationErrorDetails struct {
	Kind     string `json:"kind"`
	Op       string `json:"op,omitempty"`
	Position int    `json:"position,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Cause    string `json:"cause,omitempty"`
}

func (d OperationErrorDetails) String() string {
	s := d.Kind
	if d.Position != 0 {
		s += fmt.Sprintf(" position=%d", d.Position)
	}
	if d.Reason != "" {
		s += " reason=" + d.Reason
	}
	if d.Cause != "" {
		s += " cause=" + d.Cause
	}
	return s
}

// classifyError maps an operation error to its error code and details.
// Details are nil for errors without an arithmetic kind.
func classifyError(err error) (string, interface{}) {
	var oe *arith.OperandError
	if errors.As(err, &oe) {
		return ErrCodeInvalidOperand, &OperationErrorDetails{
			Kind:     string(arith.InvalidOperand),
			Op:       oe.Op,
			Position: int(oe.Position),
			Reason:   string(oe.Reason),
		}
	}

	var ce *arith.ComputationError
	if errors.As(err, &ce) {
		d := &OperationErrorDetails{Kind: string(arith.ComputationFailed), Op: ce.Op}
		if ce.Err != nil {
			d.Cause = ce.Err.Error()
		}
		return ErrCodeComputationFailed, d
	}

	if errors.Is(err, arith.ErrUnknownOperation) {
		return ErrCodeUnknownOperation, nil
	}
	return ErrCodeGeneric, nil
}
