package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/config"
	"github.com/roach88/arith/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update    bool   // rewrite golden files from the current traces
	Filter    string // glob matched against scenario file names without extension
	GoldenDir string // relative paths resolve against each scenario's directory
}

// Golden comparison states reported per scenario.
const (
	GoldenMatched = "matched"
	GoldenUpdated = "updated"
	GoldenMissing = "missing"
)

// ScenarioReport is the outcome of one scenario file.
type ScenarioReport struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TestSummary aggregates scenario reports.
type TestSummary struct {
	Scenarios []ScenarioReport `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

func (s *TestSummary) record(r ScenarioReport) {
	s.Scenarios = append(s.Scenarios, r)
	s.Total++
	if r.Pass {
		s.Passed++
	} else {
		s.Failed++
	}
}

func (s *TestSummary) err() error {
	if s.Failed == 0 {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", s.Failed))
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against the arithmetic operations.

Each scenario's expectations and assertions are checked. When
<golden-dir>/<name>.golden exists, the canonical trace must also match it
byte for byte. The golden dir defaults to golden_dir from the
configuration ("golden" next to each scenario file).

Exit codes:
  0 - Every scenario passed
  1 - At least one scenario failed
  2 - Command error (missing directory, bad filter)

Examples:
  arith test ./scenarios
  arith test ./scenarios --filter "decimal_*"
  arith test ./scenarios --update
  arith test ./scenarios --golden-dir /tmp/golden
  arith test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden files from the current traces")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose name matches this glob")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", defaultGoldenDir(rootOpts), "directory of golden traces")
	return cmd
}

// defaultGoldenDir reads golden_dir from the configuration.
func defaultGoldenDir(opts *RootOptions) string {
	if opts != nil && opts.Config != nil && opts.Config.GoldenDir != "" {
		return opts.Config.GoldenDir
	}
	return config.DefaultGoldenDir
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if opts.GoldenDir == "" {
		_ = formatter.Error(ErrCodeGeneric, "golden dir must not be empty", nil)
		return NewExitError(ExitCommandError, "golden dir must not be empty")
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		msg := fmt.Sprintf("scenarios directory not found: %s", dir)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	files, err := collectScenarios(dir, opts.Filter, opts.GoldenDir)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "collecting scenarios", err)
	}

	jsonOut := opts.Format == "json"
	if len(files) == 0 && !jsonOut {
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	runner := &scenarioRunner{
		h: harness.New(
			harness.WithCalculator(opts.calculator()),
			harness.WithLogger(opts.logger()),
		),
		update:    opts.Update,
		goldenDir: opts.GoldenDir,
	}
	if !jsonOut {
		runner.progress = cmd.OutOrStdout()
	}

	summary := TestSummary{Scenarios: []ScenarioReport{}}
	for _, file := range files {
		summary.record(runner.run(file))
	}

	if jsonOut {
		return writeTestJSON(cmd.OutOrStdout(), summary)
	}
	return writeTestText(cmd.OutOrStdout(), summary)
}

// collectScenarios walks dir for .yaml and .yml files, skipping golden
// directories below the root.
func collectScenarios(dir, filter, goldenDir string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			if path != dir && isGoldenDir(path, goldenDir) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			stem := strings.TrimSuffix(d.Name(), filepath.Ext(path))
			if ok, _ := filepath.Match(filter, stem); !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// isGoldenDir reports whether path is where goldenDir resolves for the
// scenarios of its parent directory.
func isGoldenDir(path, goldenDir string) bool {
	path = filepath.Clean(path)
	if filepath.IsAbs(goldenDir) {
		return path == filepath.Clean(goldenDir)
	}
	rel := filepath.Clean(goldenDir)
	return path == rel || strings.HasSuffix(path, string(filepath.Separator)+rel)
}

// goldenPath maps dir/name.yaml to goldenDir/name.golden, with a relative
// goldenDir taken from dir.
func goldenPath(goldenDir, scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if !filepath.IsAbs(goldenDir) {
		goldenDir = filepath.Join(filepath.Dir(scenarioFile), goldenDir)
	}
	return filepath.Join(goldenDir, stem+".golden")
}

type scenarioRunner struct {
	h         *harness.Harness
	update    bool
	goldenDir string
	progress  io.Writer // nil suppresses per-scenario lines
}

func (r *scenarioRunner) run(file string) ScenarioReport {
	rep := r.evaluate(file)
	if r.progress == nil {
		return rep
	}

	if !rep.Pass {
		fmt.Fprintf(r.progress, "✗ %s\n", rep.Name)
		for _, e := range rep.Errors {
			fmt.Fprintf(r.progress, "  %s\n", e)
		}
		return rep
	}
	if rep.Golden == GoldenUpdated {
		fmt.Fprintf(r.progress, "✓ %s (golden updated)\n", rep.Name)
	} else {
		fmt.Fprintf(r.progress, "✓ %s\n", rep.Name)
	}
	return rep
}

func (r *scenarioRunner) evaluate(file string) ScenarioReport {
	rep := ScenarioReport{Name: filepath.Base(file), File: file}
	fail := func(format string, args ...any) ScenarioReport {
		rep.Errors = append(rep.Errors, fmt.Sprintf(format, args...))
		return rep
	}

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return fail("failed to load scenario: %v", err)
	}
	rep.Name = scenario.Name

	result, err := r.h.Run(scenario)
	if err != nil {
		return fail("execution failed: %v", err)
	}
	snapshot, err := harness.Snapshot(scenario.Name, result)
	if err != nil {
		return fail("failed to encode trace: %v", err)
	}

	golden := goldenPath(r.goldenDir, file)
	if r.update {
		if err := writeGolden(golden, snapshot); err != nil {
			return fail("failed to update golden file: %v", err)
		}
		rep.Golden = GoldenUpdated
		rep.Pass = true
		return rep
	}

	want, err := os.ReadFile(golden)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		rep.Golden = GoldenMissing
	case err != nil:
		return fail("golden comparison failed: %v", err)
	case string(want) != string(snapshot):
		return fail("trace does not match golden file (run with --update to regenerate)")
	default:
		rep.Golden = GoldenMatched
	}

	if !result.Pass {
		rep.Errors = result.Errors
		return rep
	}
	rep.Pass = true
	return rep
}

func writeGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}

func writeTestJSON(w io.Writer, s TestSummary) error {
	response := CLIResponse{Status: "ok", Data: s}
	if s.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d of %d scenario(s) failed", s.Failed, s.Total),
		}
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		return WrapExitError(ExitCommandError, "encoding test summary", err)
	}
	return s.err()
}

func writeTestText(w io.Writer, s TestSummary) error {
	fmt.Fprintf(w, "\nTest Summary: %d passed, %d failed, %d total\n", s.Passed, s.Failed, s.Total)
	if err := s.err(); err != nil {
		return err
	}
	fmt.Fprintln(w, "All scenarios passed")
	return nil
}
