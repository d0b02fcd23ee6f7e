package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/expr"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outW, errW bytes.Buffer
	err := run(&outW, &errW, args)
	return outW.String(), errW.String(), err
}

// table parses "name value [grad]" rows into numbers keyed by name.
func table(t *testing.T, out string) map[string][]float64 {
	t.Helper()
	rows := make(map[string][]float64)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] == "NAME" {
			continue
		}
		var nums []float64
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				break
			}
			nums = append(nums, v)
		}
		if len(nums) > 0 {
			rows[fields[0]] = nums
		}
	}
	return rows
}

func TestDemo(t *testing.T) {
	out, _, err := execute(t, "demo")
	require.NoError(t, err)

	fields := strings.Fields(out)
	require.Len(t, fields, 4)

	want := []float64{1, 3 * math.Cos(8), 2 * math.Cos(8), 0.25}
	for i, f := range fields {
		got, err := strconv.ParseFloat(f, 64)
		require.NoError(t, err)
		assert.InDelta(t, want[i], got, 1e-9, "field %d", i)
	}
}

func TestGrad(t *testing.T) {
	for _, schedule := range []string{"tape", "countdown"} {
		t.Run(schedule, func(t *testing.T) {
			out, _, err := execute(t, "grad",
				"--expr", "sin(a*b + 2) + sqrt(c/4)",
				"--var", "a=2", "--var", "b=3", "--var", "c=1",
				"--schedule", schedule,
				"--check",
			)
			require.NoError(t, err)
			assert.Contains(t, out, "gradient check: ok")

			rows := table(t, out)
			assert.InDelta(t, math.Sin(8)+0.5, rows["f"][0], 1e-12)
			assert.Equal(t, 1.0, rows["f"][1])
			assert.InDelta(t, 3*math.Cos(8), rows["a"][1], 1e-9)
			assert.InDelta(t, 2*math.Cos(8), rows["b"][1], 1e-9)
			assert.InDelta(t, 0.25, rows["c"][1], 1e-9)
		})
	}
}

func TestGrad_Constants(t *testing.T) {
	out, _, err := execute(t, "grad", "--expr", "x*k", "--var", "x=3", "--const", "k=5", "--check")
	require.NoError(t, err)

	rows := table(t, out)
	assert.Equal(t, []float64{3, 5}, rows["x"])
	assert.Equal(t, []float64{5, 0}, rows["k"])
}

func TestGrad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.yaml")
	doc := `expression: a*b + c
schedule: countdown
inputs:
  a: 2
  b: 4
  c: {value: 1, requires_grad: false}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := execute(t, "grad", "--file", path, "--var", "b=10")
	require.NoError(t, err)

	rows := table(t, out)
	assert.Equal(t, []float64{21, 1}, rows["f"])
	assert.Equal(t, []float64{2, 10}, rows["a"])
	assert.Equal(t, []float64{10, 2}, rows["b"])
	assert.Equal(t, []float64{1, 0}, rows["c"])
}

func TestGrad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no expression", []string{"grad"}, expr.ErrNoExpression},
		{"unknown variable", []string{"grad", "--expr", "a+z", "--var", "a=1"}, expr.ErrUnknownVariable},
		{"bad assignment", []string{"grad", "--expr", "a", "--var", "a"}, config.ErrInvalidAssignment},
		{"unsupported syntax", []string{"grad", "--expr", "a ? 1 : 2", "--var", "a=1"}, expr.ErrUnsupportedSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGrad_UnknownSchedule(t *testing.T) {
	_, _, err := execute(t, "grad", "--expr", "a", "--var", "a=1", "--schedule", "dfs")
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "schedule", verr.Field)
}

func TestMinimize(t *testing.T) {
	for _, optimizer := range []string{"sgd", "adam"} {
		t.Run(optimizer, func(t *testing.T) {
			out, _, err := execute(t, "minimize",
				"--expr", "(x-3)*(x-3)",
				"--var", "x=0",
				"--optimizer", optimizer,
				"--lr", "0.1",
				"--steps", "5000",
				"--tol", "1e-9",
			)
			require.NoError(t, err)

			rows := table(t, out)
			assert.InDelta(t, 3, rows["x"][0], 1e-6)
			assert.Contains(t, out, "converged  true")
		})
	}
}

func TestMinimize_UnknownOptimizer(t *testing.T) {
	_, _, err := execute(t, "minimize", "--expr", "x*x", "--var", "x=1", "--optimizer", "lbfgs")
	require.ErrorIs(t, err, errUnknownOptimizer)
}

func TestLogging(t *testing.T) {
	_, logs, err := execute(t, "--log-level", "debug", "--log-format", "json", "demo")
	require.NoError(t, err)
	assert.Contains(t, logs, `"session_id"`)
	assert.Contains(t, logs, `"msg":"backward pass complete"`)

	_, _, err = execute(t, "--log-level", "loud", "demo")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "backprop "+version+"\n", out)
}
