// Package activations provides the activation function used by the network.
package activations

import "math"

// Activation is an activation function whose derivative is expressed in terms
// of its own output.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given y = f(x)
	Derivative(y float64) float64
}

// Sigmoid is the logistic activation function.
type Sigmoid struct{}

// sigmoid computes the logistic function.
// Extreme inputs saturate to exactly 0 or 1.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes y * (1 - y) where y is an activation value.
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// ActivateInPlace applies sigmoid to every element of x.
func (s Sigmoid) ActivateInPlace(x []float64) {
	for i := range x {
		x[i] = sigmoid(x[i])
	}
}
