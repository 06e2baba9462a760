package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/batch"
	"github.com/roach88/arith/internal/harness"
)

// FileValidation is the validation outcome of one file.
type FileValidation struct {
	Path  string `json:"path"`
	Type  string `json:"type"` // "batch" or "scenario"
	Calls int    `json:"calls"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

func (r ValidationResult) String() string {
	var b strings.Builder
	for _, f := range r.Files {
		if f.Error != "" {
			fmt.Fprintf(&b, "✗ %s (%s): %s\n", f.Path, f.Type, f.Error)
			continue
		}
		fmt.Fprintf(&b, "✓ %s (%s, %d calls)\n", f.Path, f.Type, f.Calls)
	}
	if r.Valid {
		b.WriteString("All files valid")
	} else {
		b.WriteString("Validation failed")
	}
	return b.String()
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check batch and scenario files without evaluating them",
		Long: `Check CUE batch files (.cue or a CUE package directory) and YAML
scenario files (.yaml, .yml) for syntax and schema errors without running
any operation.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.logger()

	result := ValidationResult{Valid: true}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("path not found: %s", path), nil)
			return WrapExitError(ExitCommandError, "path not found", err)
		}

		fv := validateFile(path)
		log.WithField("path", path).WithField("type", fv.Type).Debug("validated")
		if fv.Error != "" {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func validateFile(path string) FileValidation {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fv := FileValidation{Path: path, Type: "scenario"}
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			fv.Error = err.Error()
			return fv
		}
		fv.Calls = len(scenario.Cases)
		return fv
	default:
		fv := FileValidation{Path: path, Type: "batch"}
		b, err := batch.Load(path)
		if err != nil {
			fv.Error = err.Error()
			return fv
		}
		fv.Calls = len(b.Calls)
		return fv
	}
}
