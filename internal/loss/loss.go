// Package loss provides the squared-error loss used for training.
package loss

import "gonum.org/v1/gonum/floats"

// BackwardInPlacer is an optional interface for loss functions that support
// in-place gradient computation to avoid allocations.
type BackwardInPlacer interface {
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	// This creates a new slice and should be avoided in hot loops.
	Backward(yPred, yTrue []float64) []float64
}

// SquaredError is the summed half squared error: sum(0.5 * (y_true - y_pred)^2).
type SquaredError struct{}

// Forward computes sum(0.5 * (y_true - y_pred)^2)
func (SquaredError) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("SquaredError: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue[i] - yPred[i]
		sum += 0.5 * diff * diff
	}
	return sum
}

// Backward computes gradient: dL/dy_pred = y_pred - y_true
// Note: Returned slice is newly allocated for safety.
func (s SquaredError) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	s.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (SquaredError) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("SquaredError: slices must have same length")
	}

	floats.SubTo(grad, yPred, yTrue)
}
