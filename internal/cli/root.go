package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Config *config.Config
	Log    *logrus.Logger
	Calc   *arith.Calculator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON}

// NewRootCommand creates the root command for the arith CLI. Flag defaults
// come from cnf; a nil cnf uses config.Default().
func NewRootCommand(cnf *config.Config) *cobra.Command {
	if cnf == nil {
		cnf = config.Default()
	}
	opts := &RootOptions{Config: cnf}

	cmd := &cobra.Command{
		Use:   "arith",
		Short: "Validated arithmetic",
		Long: `Validated arithmetic over int, float, complex and decimal operands.

Operands are literals: 42 (int), 2.5 or inf (float), 1+2i (complex),
0.1d (decimal) and none (absent). Other text is passed through as a
string operand and rejected by validation. Put -- before negative
operands so they are not read as flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cnf.Format = opts.Format
			cnf.Verbose = opts.Verbose
			if err := cnf.Validate(); err != nil {
				return err
			}
			opts.Log = cnf.NewLogger(cmd.ErrOrStderr())
			opts.Calc = cnf.Calculator()
			opts.Log.WithFields(logrus.Fields{
				"command":           cmd.Name(),
				"decimal_precision": cnf.DecimalPrecision,
				"decimal_rounding":  cnf.DecimalRounding,
			}).Debug("configured")
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", cnf.Verbose, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cnf.Format, "output format (json|text)")
	cmd.PersistentFlags().Uint32Var(&cnf.DecimalPrecision, "decimal-precision", cnf.DecimalPrecision, "significant digits of decimal results")
	cmd.PersistentFlags().StringVar(&cnf.DecimalRounding, "decimal-rounding", cnf.DecimalRounding, "rounding mode of decimal results")

	// Add subcommands
	for _, op := range arith.Operations() {
		cmd.AddCommand(NewOperationCommand(opts, op))
	}
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// logger returns the configured logger, or a silent one when the command
// runs without the root command's pre-run.
func (o *RootOptions) logger() *logrus.Logger {
	if o.Log == nil {
		o.Log = logrus.New()
		o.Log.SetLevel(logrus.PanicLevel)
	}
	return o.Log
}

// calculator returns the configured calculator, or arith.Default().
func (o *RootOptions) calculator() *arith.Calculator {
	if o.Calc == nil {
		return arith.Default()
	}
	return o.Calc
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}
