// Package net provides unit tests for the network engine.
package net

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustNew(t testing.TB, in, hidden, out int, seed uint64) *Network {
	t.Helper()
	n, err := New(in, hidden, out, seed)
	require.NoError(t, err)
	return n
}

// referenceTrain is the per-unit update rule written directly on the flat
// buffer, used to cross-check the matrix formulation of the engine.
func referenceTrain(weights, biases []float64, in, hidden, out int, x, target []float64, lr float64) {
	sig := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

	h := make([]float64, hidden)
	for i := 0; i < hidden; i++ {
		sum := 0.0
		for j := 0; j < in; j++ {
			sum += x[j] * weights[i*in+j]
		}
		h[i] = sig(sum + biases[0])
	}
	o := make([]float64, out)
	for i := 0; i < out; i++ {
		sum := 0.0
		for j := 0; j < hidden; j++ {
			sum += h[j] * weights[hidden*in+i*hidden+j]
		}
		o[i] = sig(sum + biases[1])
	}

	for i := 0; i < hidden; i++ {
		sum := 0.0
		for j := 0; j < out; j++ {
			a := o[j] - target[j]
			b := o[j] * (1 - o[j])
			idx := hidden*in + j*hidden + i
			sum += a * b * weights[idx]
			weights[idx] -= lr * a * b * h[i]
		}
		for k := 0; k < in; k++ {
			weights[i*in+k] -= lr * sum * h[i] * (1 - h[i]) * x[k]
		}
	}
}

// TestNewShapes tests buffer sizes for a range of shapes.
func TestNewShapes(t *testing.T) {
	tests := []struct {
		in, hidden, out int
	}{
		{1, 1, 1},
		{2, 4, 1},
		{3, 5, 2},
		{256, 28, 10},
	}

	for _, tt := range tests {
		n := mustNew(t, tt.in, tt.hidden, tt.out, 7)

		assert.Len(t, n.Weights(), tt.hidden*(tt.in+tt.out))
		assert.Len(t, n.Biases(), 2)
		assert.Equal(t, make([]float64, tt.hidden), n.HiddenActivations())
		assert.Equal(t, make([]float64, tt.out), n.OutputActivations())
		assert.Equal(t, tt.in, n.InputCount())
		assert.Equal(t, tt.hidden, n.HiddenCount())
		assert.Equal(t, tt.out, n.OutputCount())
	}
}

// TestNewInvalidCounts tests rejection of non-positive counts.
func TestNewInvalidCounts(t *testing.T) {
	for _, counts := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-2, 3, 1}} {
		n, err := New(counts[0], counts[1], counts[2], 0)
		assert.ErrorIs(t, err, ErrInvalidArgument, "counts %v", counts)
		assert.Nil(t, n)
	}

	_, err := New(math.MaxInt/2, math.MaxInt/2, 4, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestNewDeterministic tests that equal seeds give equal parameters.
func TestNewDeterministic(t *testing.T) {
	a := mustNew(t, 4, 3, 2, 42)
	b := mustNew(t, 4, 3, 2, 42)
	c := mustNew(t, 4, 3, 2, 43)

	assert.Equal(t, a.Weights(), b.Weights())
	assert.Equal(t, a.Biases(), b.Biases())
	assert.NotEqual(t, a.Weights(), c.Weights())
}

// TestNewInitRange tests that parameters are drawn from [-0.5, 0.5).
func TestNewInitRange(t *testing.T) {
	n := mustNew(t, 64, 32, 10, 1)

	params := append(n.Weights(), n.Biases()...)
	var sum float64
	for _, v := range params {
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 0.5)
		sum += v
	}
	// 2368 uniform draws: the mean is well inside +-0.05.
	assert.InDelta(t, 0, sum/float64(len(params)), 0.05)
}

// TestNewFromParams tests construction from explicit parameters.
func TestNewFromParams(t *testing.T) {
	weights := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	biases := []float64{-0.1, 0.1}

	n, err := NewFromParams(weights, biases, 2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, weights, n.Weights())
	assert.Equal(t, biases, n.Biases())

	// The network owns its own copy.
	weights[0] = 99
	biases[1] = 99
	assert.Equal(t, 0.1, n.Weights()[0])
	assert.Equal(t, 0.1, n.Biases()[1])
}

// TestNewFromParamsShapeMismatch tests buffer length validation.
func TestNewFromParamsShapeMismatch(t *testing.T) {
	_, err := NewFromParams(make([]float64, 5), make([]float64, 2), 2, 2, 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewFromParams(make([]float64, 6), make([]float64, 3), 2, 2, 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewFromParams(nil, make([]float64, 2), 0, 2, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestNewFromParamsEquivalence tests that a rebuilt network predicts identically.
func TestNewFromParamsEquivalence(t *testing.T) {
	src := mustNew(t, 5, 4, 3, 9)
	dst, err := NewFromParams(src.Weights(), src.Biases(), 5, 4, 3)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	for k := 0; k < 20; k++ {
		x := make([]float64, 5)
		for i := range x {
			x[i] = rng.Float64()*4 - 2
		}
		want, err := src.Predict(x)
		require.NoError(t, err)
		got, err := dst.Predict(x)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// TestPredictKnownValues tests the forward pass against hand computed values.
func TestPredictKnownValues(t *testing.T) {
	// hidden_i = sigmoid(w_i . x + b0), output = sigmoid(v . hidden + b1)
	weights := []float64{
		0.5, -0.5, // into hidden 0
		1.0, 1.0, // into hidden 1
		2.0, -1.0, // hidden -> output
	}
	n, err := NewFromParams(weights, []float64{0.25, -0.25}, 2, 2, 1)
	require.NoError(t, err)

	out, err := n.Predict([]float64{1, 2})
	require.NoError(t, err)

	sig := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }
	h0 := sig(0.5 - 1.0 + 0.25)
	h1 := sig(1.0 + 2.0 + 0.25)
	want := sig(2*h0 - h1 - 0.25)

	require.Len(t, out, 1)
	assert.InDelta(t, want, out[0], 1e-15)
	assert.InDeltaSlice(t, []float64{h0, h1}, n.HiddenActivations(), 1e-15)
}

// TestPredictDeterministic tests that repeated predictions are bit-identical.
func TestPredictDeterministic(t *testing.T) {
	n := mustNew(t, 3, 6, 2, 5)
	x := []float64{0.3, -1.2, 0.8}

	first, err := n.Predict(x)
	require.NoError(t, err)
	second, err := n.Predict(x)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(second[i]))
	}
}

// TestPredictReturnsCopy tests that the result does not alias internal state.
func TestPredictReturnsCopy(t *testing.T) {
	n := mustNew(t, 2, 3, 2, 1)

	out, err := n.Predict([]float64{1, 0})
	require.NoError(t, err)
	cached := n.OutputActivations()

	out[0] = 42
	assert.Equal(t, cached, n.OutputActivations())

	again, err := n.Predict([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, cached, again)
}

// TestShapeMismatchLeavesStateUnchanged tests validation at the API boundary.
func TestShapeMismatchLeavesStateUnchanged(t *testing.T) {
	n := mustNew(t, 3, 2, 2, 11)
	_, err := n.Predict([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	weights := n.Weights()
	hidden := n.HiddenActivations()
	output := n.OutputActivations()

	_, err = n.Predict([]float64{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = n.Train([]float64{1, 2, 3, 4}, []float64{0, 1}, 0.5)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = n.Train([]float64{1, 2, 3}, []float64{0}, 0.5)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = n.TotalError([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.Equal(t, weights, n.Weights())
	assert.Equal(t, hidden, n.HiddenActivations())
	assert.Equal(t, output, n.OutputActivations())
}

// TestTrainInvalidLearningRate tests learning rate validation.
func TestTrainInvalidLearningRate(t *testing.T) {
	n := mustNew(t, 2, 2, 1, 0)
	weights := n.Weights()

	for _, lr := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		err := n.Train([]float64{1, 0}, []float64{1}, lr)
		assert.ErrorIs(t, err, ErrInvalidArgument, "lr=%v", lr)
	}
	assert.Equal(t, weights, n.Weights())
	assert.Equal(t, make([]float64, 1), n.OutputActivations())
}

// TestTrainMatchesReference tests the engine against the per-unit update rule.
func TestTrainMatchesReference(t *testing.T) {
	const in, hidden, out = 4, 5, 3
	n := mustNew(t, in, hidden, out, 21)
	weights := n.Weights()
	biases := n.Biases()

	rng := rand.New(rand.NewSource(8))
	for step := 0; step < 50; step++ {
		x := make([]float64, in)
		for i := range x {
			x[i] = rng.Float64()
		}
		target := make([]float64, out)
		target[rng.Intn(out)] = 1

		require.NoError(t, n.Train(x, target, 0.7))
		referenceTrain(weights, biases, in, hidden, out, x, target, 0.7)
	}

	assert.InDeltaSlice(t, weights, n.Weights(), 1e-12)
}

// TestTrainLeavesBiasesUnchanged tests that backpropagation never touches biases.
func TestTrainLeavesBiasesUnchanged(t *testing.T) {
	n := mustNew(t, 3, 4, 2, 17)
	biases := n.Biases()
	weights := n.Weights()

	for i := 0; i < 200; i++ {
		require.NoError(t, n.Train([]float64{0.5, 1, -1}, []float64{1, 0}, 1.0))
	}

	assert.Equal(t, biases, n.Biases())
	assert.NotEqual(t, weights, n.Weights())
}

// TestTotalError tests the error readout over cached outputs.
func TestTotalError(t *testing.T) {
	n := mustNew(t, 2, 3, 2, 4)
	expected := []float64{1, 0}

	out, err := n.Predict([]float64{0.2, 0.7})
	require.NoError(t, err)

	want := 0.5*(1-out[0])*(1-out[0]) + 0.5*out[1]*out[1]
	got, err := n.TotalError(expected)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-15)

	// No forward pass: a different expectation reads the same cache.
	zero, err := n.TotalError(out)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)
}

// TestTotalErrorAfterTrain tests that the readout reflects the pre-update output.
func TestTotalErrorAfterTrain(t *testing.T) {
	n := mustNew(t, 2, 3, 1, 4)
	x, y := []float64{1, 1}, []float64{0}

	before := n.Clone()
	out, err := before.Predict(x)
	require.NoError(t, err)

	require.NoError(t, n.Train(x, y, 0.5))
	got, err := n.TotalError(y)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*out[0]*out[0], got, 1e-15)
}

// TestTrainSinglePairConverges tests that repeating one record drives the error down.
func TestTrainSinglePairConverges(t *testing.T) {
	n := mustNew(t, 3, 4, 2, 2)
	x := []float64{0.2, 0.9, 0.4}
	y := []float64{1, 0}

	prev := math.Inf(1)
	for step := 0; step < 3000; step++ {
		require.NoError(t, n.Train(x, y, 0.5))
		e, err := n.TotalError(y)
		require.NoError(t, err)
		require.LessOrEqual(t, e, prev+1e-12, "error increased at step %d", step)
		prev = e
	}
	assert.Less(t, prev, 1e-3)
}

// TestNetworkXOR tests that the network learns the XOR truth table.
func TestNetworkXOR(t *testing.T) {
	inputs := [][]float64{{1, 1}, {1, 0}, {0, 1}, {0, 0}}
	targets := [][]float64{{0}, {1}, {1}, {0}}

	n := mustNew(t, 2, 8, 1, 0)
	rng := rand.New(rand.NewSource(0))
	lr := 1.0

	for epoch := 0; epoch < 6000; epoch++ {
		for i := range inputs {
			require.NoError(t, n.Train(inputs[i], targets[i], lr))
		}
		rng.Shuffle(len(inputs), func(i, j int) {
			inputs[i], inputs[j] = inputs[j], inputs[i]
			targets[i], targets[j] = targets[j], targets[i]
		})
		lr *= 0.9999
	}

	for i := range inputs {
		out, err := n.Predict(inputs[i])
		require.NoError(t, err)
		assert.Equal(t, targets[i][0], math.Round(out[0]), "XOR%v = %v", inputs[i], out[0])
		assert.InDelta(t, targets[i][0], out[0], 0.2, "XOR%v", inputs[i])
	}
}

// TestClone tests that clones are independent.
func TestClone(t *testing.T) {
	n := mustNew(t, 2, 2, 1, 3)
	_, err := n.Predict([]float64{1, 0})
	require.NoError(t, err)

	c := n.Clone()
	assert.Equal(t, n.Weights(), c.Weights())
	assert.Equal(t, n.OutputActivations(), c.OutputActivations())

	require.NoError(t, c.Train([]float64{1, 0}, []float64{1}, 1))
	assert.NotEqual(t, n.Weights(), c.Weights())
}

func TestSummary(t *testing.T) {
	n := mustNew(t, 256, 28, 10, 0)

	var buf bytes.Buffer
	n.Summary(&buf)

	assert.Contains(t, buf.String(), "Total params: 7450")
	assert.Contains(t, buf.String(), "Trainable params: 7448")
}
