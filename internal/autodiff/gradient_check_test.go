package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/autodiff"
)

const (
	finiteStep = 1e-5
	checkTol   = 1e-6
)

// TestNumericalGradient_SimpleSquare tests f(x) = x².
func TestNumericalGradient_SimpleSquare(t *testing.T) {
	square := func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
		return in[0].Mul(in[0])
	}

	numeric := autodiff.NumericalGradient(square, []float64{3}, finiteStep)
	require.Len(t, numeric, 1)
	assert.InDelta(t, 6.0, numeric[0], 1e-6)

	value, analytic := autodiff.Gradient(square, []float64{3})
	assert.Equal(t, 9.0, value)
	assert.Equal(t, []float64{6}, analytic)
}

// TestCheckGradient_Expressions compares Backward with finite differences.
func TestCheckGradient_Expressions(t *testing.T) {
	tests := []struct {
		name string
		fn   autodiff.Func
		at   []float64
	}{
		{
			name: "composite",
			fn: func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
				return in[0].AddScalar(2).MulScalar(3)
			},
			at: []float64{5},
		},
		{
			name: "polynomial",
			fn: func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
				x := in[0]
				return x.Mul(x).Mul(x).Sub(x.Mul(x).MulScalar(2)).Add(x)
			},
			at: []float64{2},
		},
		{
			name: "sample expression",
			fn: func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
				a, b, c := in[0], in[1], in[2]
				return a.Mul(b).AddScalar(2).Sin().Add(c.DivScalar(4).Sqrt())
			},
			at: []float64{2, 3, 1},
		},
		{
			name: "shared intermediate",
			fn: func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
				m := in[0].Div(in[1])
				return m.Log().Mul(m.Exp()).Sub(m.Cos().Neg())
			},
			at: []float64{1.3, 0.7},
		},
		{
			name: "reversed scalar operands",
			fn: func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
				return in[0].RDivScalar(1).RSubScalar(4).Mul(in[1])
			},
			at: []float64{0.5, 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := autodiff.CheckGradient(tt.fn, tt.at, finiteStep, checkTol)
			require.NoError(t, err)
			assert.Len(t, check.Analytic, len(tt.at))
			assert.LessOrEqual(t, check.MaxDiff, checkTol)
		})
	}
}

// TestCheckGradient_Mismatch tests that a wrong derivative is reported.
func TestCheckGradient_Mismatch(t *testing.T) {
	// |x| has no derivative at 0: Backward sees sqrt(x*x) and yields NaN.
	abs := func(_ *autodiff.Graph, in []autodiff.Value) autodiff.Value {
		return in[0].Mul(in[0]).Sqrt()
	}

	check, err := autodiff.CheckGradient(abs, []float64{0}, finiteStep, checkTol)
	require.ErrorIs(t, err, autodiff.ErrGradientMismatch)
	assert.Equal(t, 0, check.Worst)
	assert.True(t, math.IsInf(check.MaxDiff, 1))
}

func TestCheckGradient_NoInputs(t *testing.T) {
	constant := func(g *autodiff.Graph, _ []autodiff.Value) autodiff.Value {
		return g.Const(2).Exp()
	}

	check, err := autodiff.CheckGradient(constant, nil, finiteStep, checkTol)
	require.NoError(t, err)
	assert.Equal(t, -1, check.Worst)
	assert.Empty(t, check.Analytic)
}
