package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestRuleTable_Exhaustive(t *testing.T) {
	for _, r := range Rules() {
		op := r.Operation()
		assert.NotEmpty(t, op.Name, "rule %d has no name", r)
		assert.NotNil(t, op.Backward, "rule %s has no backward", r)
		if r == Leaf {
			assert.Nil(t, op.Forward)
			assert.Equal(t, 0, op.Arity)
			continue
		}
		assert.NotNil(t, op.Forward, "rule %s has no forward", r)
	}
	assert.Len(t, Rules(), int(numRules))
}

func TestRule_Arity(t *testing.T) {
	tests := map[Rule]int{
		Leaf: 0, Add: 2, Sub: 2, Mul: 2, Div: 2,
		Negate: 1, Sin: 1, Cos: 1, Sqrt: 1, Log: 1, Exp: 1,
	}
	for r, want := range tests {
		assert.Equal(t, want, r.Arity(), r.String())
	}
}

func TestRule_Invalid(t *testing.T) {
	bogus := Rule(200)
	assert.False(t, bogus.Valid())
	assert.Equal(t, "Rule(200)", bogus.String())
	assert.Panics(t, func() { bogus.Arity() })
	assert.Panics(t, func() { Leaf.Forward(1, 2) })
}

func TestLookup(t *testing.T) {
	for _, r := range Rules() {
		if r == Leaf {
			continue
		}
		got, ok := Lookup(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}

	_, ok := Lookup("leaf")
	assert.False(t, ok, "leaf must not be addressable by name")
	_, ok = Lookup("tan")
	assert.False(t, ok)
}

// TestRule_ForwardBackward checks every rule against its closed-form derivative.
func TestRule_ForwardBackward(t *testing.T) {
	const x, y, grad = 0.7, 1.9, 1.5

	tests := []struct {
		rule    Rule
		forward float64
		dx, dy  float64
	}{
		{Add, x + y, grad, grad},
		{Sub, x - y, grad, -grad},
		{Mul, x * y, grad * y, grad * x},
		{Div, x / y, grad / y, -grad * x / (y * y)},
		{Negate, -x, -grad, 0},
		{Sin, math.Sin(x), grad * math.Cos(x), 0},
		{Cos, math.Cos(x), -grad * math.Sin(x), 0},
		{Sqrt, math.Sqrt(x), grad * 0.5 / math.Sqrt(x), 0},
		{Log, math.Log(x), grad / x, 0},
		{Exp, math.Exp(x), grad * math.Exp(x), 0},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			out := tt.rule.Forward(x, y)
			assert.InDelta(t, tt.forward, out, epsilon)

			dx, dy := tt.rule.Backward(grad, x, y, out)
			assert.InDelta(t, tt.dx, dx, epsilon, "dx")
			assert.InDelta(t, tt.dy, dy, epsilon, "dy")
		})
	}
}

func TestRule_LeafBackward(t *testing.T) {
	dx, dy := Leaf.Backward(3, 1, 2, 4)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

// TestRule_NonFinite verifies that domain errors propagate as IEEE values.
func TestRule_NonFinite(t *testing.T) {
	assert.True(t, math.IsInf(Div.Forward(1, 0), 1))
	assert.True(t, math.IsNaN(Log.Forward(-1, 0)))
	assert.True(t, math.IsInf(Log.Forward(0, 0), -1))
	assert.True(t, math.IsNaN(Sqrt.Forward(-4, 0)))

	dx, _ := Sqrt.Backward(1, 0, 0, 0)
	assert.True(t, math.IsInf(dx, 1))

	dx, dy := Div.Backward(1, 1, 0, math.Inf(1))
	assert.True(t, math.IsInf(dx, 1))
	assert.True(t, math.IsInf(dy, -1))
}
