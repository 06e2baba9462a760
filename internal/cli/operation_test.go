package cli

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"robust-add", "5", "2.5"}, "7.5 (float)\n"},
		{[]string{"robust-add", "0.1d", "0.2d"}, "0.3 (decimal)\n"},
		{[]string{"robust-add3", "1", "2", "3"}, "6 (int)\n"},
		{[]string{"product", "1+2i", "2"}, "(2+4i) (complex)\n"},
		{[]string{"product", "inf", "0"}, "NaN (float)\n"},
		{[]string{"add", "2", "3"}, "5 (int)\n"},
		{[]string{"add3", "1", "2", "0.5"}, "3.5 (float)\n"},
		{[]string{"robust-add", "--", "-3", "5"}, "2 (int)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestOperationInvalidOperand(t *testing.T) {
	stdout, _, err := execute(t, "robust-add", "none", "5")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E101]: robust_add: first operand is absent; expected int, float, complex or decimal\n", stdout)

	stdout, _, err = execute(t, "product", "5", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E101]: product: second operand has unsupported kind string")
}

func TestOperationComputationFailed(t *testing.T) {
	stdout, _, err := execute(t, "robust-add", "1d", "2.5")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E102]: robust_add: cannot combine decimal 1 and float 2.5")

	stdout, _, err = execute(t, "add", "x", "5")
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [E102]")
}

func TestOperationBadLiteral(t *testing.T) {
	stdout, _, err := execute(t, "robust-add", "99999999999999999999", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E002]: integer literal 99999999999999999999 overflows int64")
}

func TestOperationArgCount(t *testing.T) {
	_, _, err := execute(t, "robust-add", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s), received 1")
	assert.Equal(t, ExitCommandError, HandleError(err, io.Discard))
}

func TestOperationDecimalPrecisionFlag(t *testing.T) {
	stdout, _, err := execute(t, "--decimal-precision", "2", "product", "1.25d", "1")
	require.NoError(t, err)
	assert.Equal(t, "1.2 (decimal)\n", stdout)

	stdout, _, err = execute(t, "--decimal-precision", "2", "--decimal-rounding", "half_up", "product", "1.25d", "1")
	require.NoError(t, err)
	assert.Equal(t, "1.3 (decimal)\n", stdout)
}

func TestOperationJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "robust-add", "2", "3")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Op     string            `json:"op"`
			Args   []string          `json:"args"`
			Result map[string]string `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "robust_add", resp.Data.Op)
	assert.Equal(t, []string{"2", "3"}, resp.Data.Args)
	assert.Equal(t, map[string]string{"kind": "int", "value": "5"}, resp.Data.Result)
}

func TestOperationJSONError(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "product", "5", "none")
	require.Error(t, err)

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string                `json:"code"`
			Details OperationErrorDetails `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E101", resp.Error.Code)
	assert.Equal(t, OperationErrorDetails{Kind: "INVALID_OPERAND", Op: "product", Position: 2, Reason: "absent"}, resp.Error.Details)
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "robust-add3", CommandName("robust_add3"))
	assert.Equal(t, "product", CommandName("product"))
}
