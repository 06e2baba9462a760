package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/batch"
	"github.com/roach88/arith/internal/num"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	RunIDs batch.RunIDGenerator // nil uses UUIDv7
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}
	return newEvalCommand(opts)
}

func newEvalCommand(opts *EvalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <batch.cue | batch-dir>",
		Short: "Evaluate a batch of calls written in CUE",
		Long: `Evaluate every call listed in a CUE batch file.

Example batch:
  calls: [
    {op: "product", args: [2.5, 4]},
    {op: "robust_add", args: [{decimal: "0.1"}, {decimal: "0.2"}]},
  ]

Exit codes:
  0 - All calls succeeded
  1 - One or more calls failed
  2 - Command error (batch not found or invalid)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	b, err := batch.Load(path)
	if err != nil {
		code := ErrCodeLoadFailed
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			code = ErrCodeNotFound
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading batch", err)
	}

	evalOpts := []batch.EvaluatorOption{batch.WithLogger(opts.logger())}
	if opts.RunIDs != nil {
		evalOpts = append(evalOpts, batch.WithRunIDGenerator(opts.RunIDs))
	}
	report, err := batch.NewEvaluator(opts.calculator(), evalOpts...).Evaluate(cmd.Context(), b)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "evaluating batch", err)
	}

	if opts.Format == "json" {
		if err := outputEvalJSON(cmd, report); err != nil {
			return err
		}
	} else {
		outputEvalText(cmd, report)
	}

	if failed := report.Failed(); failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d call(s) failed", failed))
	}
	return nil
}

func outputEvalJSON(cmd *cobra.Command, report *batch.Report) error {
	data, err := report.Canonical()
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding report", err)
	}

	response := CLIResponse{
		Status: "ok",
		Data:   json.RawMessage(data),
		RunID:  report.RunID,
	}
	if failed := report.Failed(); failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeBatchFailed,
			Message: fmt.Sprintf("%d call(s) failed", failed),
		}
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(response)
}

func outputEvalText(cmd *cobra.Command, report *batch.Report) {
	w := cmd.OutOrStdout()
	for _, o := range report.Outcomes {
		args := make([]string, len(o.Call.Args))
		for i, a := range o.Call.Args {
			args[i] = operandText(a)
		}
		call := fmt.Sprintf("[%d] %s(%s)", o.Index, o.Call.Op, strings.Join(args, ", "))
		if o.OK() {
			fmt.Fprintf(w, "✓ %s = %s (%s)\n", call, o.Result, o.Result.Kind())
			continue
		}
		code, _ := classifyError(o.Err)
		fmt.Fprintf(w, "✗ %s: [%s] %v\n", call, code, o.Err)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Batch Summary: %d succeeded, %d failed, %d total (run %s)\n",
		len(report.Outcomes)-report.Failed(), report.Failed(), len(report.Outcomes), report.RunID)
}

// operandText renders an operand the way it would be typed on the command
// line.
func operandText(a any) string {
	switch v := a.(type) {
	case nil:
		return "none"
	case string:
		return fmt.Sprintf("%q", v)
	case num.Decimal:
		return v.String() + "d"
	case num.Complex:
		return strings.Trim(v.String(), "()")
	default:
		return fmt.Sprint(v)
	}
}
