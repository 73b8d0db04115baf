package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

// TestTrainFollowsNegativeGradient checks that one Train step moves every
// weight by exactly -lr times the numerical gradient of the total error.
func TestTrainFollowsNegativeGradient(t *testing.T) {
	const (
		in, hidden, out = 3, 4, 2
		lr              = 0.1
	)
	src := mustNew(t, in, hidden, out, 13)
	x := []float64{0.6, -0.3, 0.9}
	y := []float64{0, 1}

	biases := src.Biases()
	totalError := func(w []float64) float64 {
		n, err := NewFromParams(w, biases, in, hidden, out)
		require.NoError(t, err)
		_, err = n.Predict(x)
		require.NoError(t, err)
		e, err := n.TotalError(y)
		require.NoError(t, err)
		return e
	}

	before := src.Weights()
	numeric := fd.Gradient(nil, totalError, before, &fd.Settings{Formula: fd.Central})

	require.NoError(t, src.Train(x, y, lr))
	after := src.Weights()

	analytic := make([]float64, len(before))
	for i := range before {
		analytic[i] = (before[i] - after[i]) / lr
	}
	assert.InDeltaSlice(t, numeric, analytic, 1e-7)
}
