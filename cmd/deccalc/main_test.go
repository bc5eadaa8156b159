package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coachpo/pgnumeric/errs"
)

func runCapture(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(append([]string{"-quiet"}, args...), strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestEvalBinaryOperators(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "add", "1.00", "2.30"}, "3.30"},
		{[]string{"eval", "mul", "2.5", "4"}, "10.0"},
		{[]string{"-scale", "2", "eval", "div", "10", "4"}, "2.50"},
		{[]string{"eval", "pow", "2", "10"}, "1024"},
		{[]string{"eval", "mod", "10", "3"}, "1"},
		{[]string{"eval", "cmp", "1.5", "1.50"}, "0"},
		{[]string{"eval", "gcd", "12", "18"}, "6"},
	}
	for _, tc := range cases {
		out, err := runCapture(t, tc.args, "")
		require.NoError(t, err, tc.args)
		require.Equal(t, tc.want+"\n", out, tc.args)
	}
}

func TestEvalUnaryOperators(t *testing.T) {
	out, err := runCapture(t, []string{"-scale", "10", "eval", "sqrt", "2"}, "")
	require.NoError(t, err)
	require.Equal(t, "1.4142135624\n", out)

	out, err = runCapture(t, []string{"eval", "fact", "5"}, "")
	require.NoError(t, err)
	require.Equal(t, "120\n", out)

	out, err = runCapture(t, []string{"-scale", "1", "eval", "round", "2.45"}, "")
	require.NoError(t, err)
	require.Equal(t, "2.5\n", out)
}

func TestEvalErrorExitCodes(t *testing.T) {
	_, err := runCapture(t, []string{"eval", "div", "1", "0"}, "")
	require.Error(t, err)
	require.Equal(t, errs.CodeDivisionByZero, errs.CodeOf(err))
	require.Equal(t, 3, exitCode(err))

	_, err = runCapture(t, []string{"eval", "pow", "-8", "1.5"}, "")
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
	require.Equal(t, 6, exitCode(err))

	_, err = runCapture(t, []string{"eval", "add", "junk", "1"}, "")
	require.Error(t, err)
	require.Equal(t, 2, exitCode(err))
}

func TestApplyTypmodFlag(t *testing.T) {
	out, err := runCapture(t, []string{"-typmod", "5,2", "eval", "abs", "12.345"}, "")
	require.NoError(t, err)
	require.Equal(t, "12.35\n", out)

	_, err = runCapture(t, []string{"-typmod", "5,2", "eval", "abs", "123.456"}, "")
	require.Error(t, err)
	require.Equal(t, errs.CodeOutOfRange, errs.CodeOf(err))
}

func TestSumReadsStdin(t *testing.T) {
	out, err := runCapture(t, []string{"sum"}, "1.00\n2.30\n\n# comment\n-0.30\n")
	require.NoError(t, err)
	require.Equal(t, "3.00\n", out)
}

func TestStatsJSONOutput(t *testing.T) {
	out, err := runCapture(t, []string{"-json", "stats"}, "1\n2\n3\n")
	require.NoError(t, err)
	require.Contains(t, out, `"count":3`)
	require.Contains(t, out, `"avg":"2.0000000000000000"`)
}
