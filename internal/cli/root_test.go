package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arith/internal/config"
)

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(nil)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(nil)
	require.NotNil(t, cmd)
	assert.Equal(t, "arith", cmd.Use)
	assert.Contains(t, cmd.Long, "Validated arithmetic")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	commands := []string{"add", "add3", "robust-add", "robust-add3", "product", "ops", "eval", "validate", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(nil)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	precisionFlag := cmd.PersistentFlags().Lookup("decimal-precision")
	require.NotNil(t, precisionFlag)
	assert.Equal(t, "28", precisionFlag.DefValue)

	roundingFlag := cmd.PersistentFlags().Lookup("decimal-rounding")
	require.NotNil(t, roundingFlag)
	assert.Equal(t, "half_even", roundingFlag.DefValue)
}

func TestFlagDefaultsFromConfig(t *testing.T) {
	cnf := config.Default()
	cnf.Format = config.FormatJSON
	cnf.DecimalPrecision = 6

	cmd := NewRootCommand(cnf)
	assert.Equal(t, "json", cmd.PersistentFlags().Lookup("format").DefValue)
	assert.Equal(t, "6", cmd.PersistentFlags().Lookup("decimal-precision").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
	assert.Equal(t, ExitCommandError, HandleError(err, &bytes.Buffer{}))
}

func TestInvalidRoundingFlag(t *testing.T) {
	_, _, err := execute(t, "--decimal-rounding", "sideways", "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid decimal rounding")
}

func TestVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "-v", "robust-add", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "5 (int)\n", stdout)
	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "op=robust_add")

	_, stderr, err = execute(t, "robust-add", "2", "3")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestOpsCommand(t *testing.T) {
	stdout, _, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, stdout, "robust-add3")
	assert.Contains(t, stdout, "3 operands  validated three-way addition")
}
