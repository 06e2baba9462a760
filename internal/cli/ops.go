package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/arith"
)

// OperationInfo describes one registered operation in `arith ops` output.
type OperationInfo struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Arity     int    `json:"arity"`
	Validated bool   `json:"validated"`
	Summary   string `json:"summary"`
}

// OperationList is the payload of the ops command.
type OperationList []OperationInfo

func (l OperationList) String() string {
	var b strings.Builder
	for i, op := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-12s %d operands  %s", op.Command, op.Arity, op.Summary)
	}
	return b.String()
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ops",
		Short:         "List the available operations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list OperationList
			for _, op := range arith.Operations() {
				list = append(list, OperationInfo{
					Name:      op.Name,
					Command:   CommandName(op.Name),
					Arity:     op.Arity,
					Validated: op.Validated,
					Summary:   op.Summary,
				})
			}
			return rootOpts.formatter(cmd).Success(list)
		},
	}
}
