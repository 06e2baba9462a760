package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/num"
)

// OperationResult is the JSON payload of a successful operation command.
type OperationResult struct {
	Op     string    `json:"op"`
	Args   []string  `json:"args"`
	Result num.Value `json:"result"`
}

func (r OperationResult) String() string {
	return fmt.Sprintf("%s (%s)", r.Result, r.Result.Kind())
}

// CommandName returns the command name for an operation, e.g.
// "robust-add" for robust_add.
func CommandName(op string) string {
	return strings.ReplaceAll(op, "_", "-")
}

// NewOperationCommand creates the command that runs one registered operation.
func NewOperationCommand(rootOpts *RootOptions, op arith.Operation) *cobra.Command {
	operands := make([]string, op.Arity)
	for i := range operands {
		operands[i] = fmt.Sprintf("<%c>", 'a'+i)
	}

	long := op.Summary + "."
	if !op.Validated {
		long += "\n\nOperands are not validated; mismatched kinds fail the computation."
	}

	return &cobra.Command{
		Use:           CommandName(op.Name) + " " + strings.Join(operands, " "),
		Short:         op.Summary,
		Long:          long,
		Args:          cobra.ExactArgs(op.Arity),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(rootOpts, op.Name, args, cmd)
		},
	}
}

func runOperation(opts *RootOptions, op string, texts []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.logger().WithField("op", op)

	args := make([]any, len(texts))
	for i, text := range texts {
		v, err := num.ParseOperand(text)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidLiteral, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid operand literal", err)
		}
		args[i] = v
	}
	log.WithField("args", texts).Debug("parsed operands")

	result, err := opts.calculator().Call(op, args...)
	if err != nil {
		code, details := classifyError(err)
		log.WithFields(logrus.Fields{"code": code}).Debug(err.Error())
		_ = formatter.Error(code, err.Error(), details)
		return WrapExitError(ExitFailure, op+" failed", err)
	}

	log.WithFields(logrus.Fields{"kind": result.Kind(), "result": result.String()}).Debug("operation succeeded")
	return formatter.Success(OperationResult{Op: op, Args: texts, Result: result})
}
