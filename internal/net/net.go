// Package net provides the single hidden layer network engine.
//
// A Network keeps every weight in one flat buffer: the input to hidden matrix
// (weight of input j into hidden unit i at i*inputCount+j) followed by the
// hidden to output matrix (weight of hidden unit j into output i at
// hiddenCount*inputCount + i*hiddenCount + j). Two scalar biases are shared
// by all units of the hidden and output layer respectively.
//
// A Network is not safe for concurrent use. Use Clone to obtain an
// independent instance per goroutine.
package net

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/FlavioCFOliveira/GoTinn/internal/activations"
	"github.com/FlavioCFOliveira/GoTinn/internal/loss"
)

// BiasCount is the number of biases: one for the hidden layer, one for the
// output layer.
const BiasCount = 2

// Network is a feed-forward network with exactly one sigmoid hidden layer.
type Network struct {
	inputCount  int
	hiddenCount int
	outputCount int

	weights []float64
	biases  []float64

	// Views sharing the backing array of weights.
	wIH *mat.Dense // hiddenCount x inputCount
	wHO *mat.Dense // outputCount x hiddenCount

	// Activation caches, overwritten by every forward pass.
	hidden    []float64
	output    []float64
	hiddenVec *mat.VecDense
	outputVec *mat.VecDense

	// Pre-allocated delta buffers for the backward pass.
	// This avoids allocations in the training loop
	outDelta    *mat.VecDense
	hiddenDelta *mat.VecDense

	act  activations.Sigmoid
	loss loss.SquaredError
}

// ParamCount returns the number of weights of a network with the given counts.
// It fails if any count is not positive or the total overflows int.
func ParamCount(inputCount, hiddenCount, outputCount int) (int, error) {
	if inputCount <= 0 || hiddenCount <= 0 || outputCount <= 0 {
		return 0, fmt.Errorf("%w: counts must be positive, got %d-%d-%d",
			ErrInvalidArgument, inputCount, hiddenCount, outputCount)
	}
	fanSum := inputCount + outputCount
	if fanSum < inputCount || hiddenCount > math.MaxInt/fanSum {
		return 0, fmt.Errorf("%w: %d-%d-%d network is too large",
			ErrInvalidArgument, inputCount, hiddenCount, outputCount)
	}
	return hiddenCount * fanSum, nil
}

// New creates an untrained network. Every weight and then both biases are
// drawn from uniform[-0.5, 0.5) using a source seeded with seed, so equal
// arguments always produce equal parameters.
func New(inputCount, hiddenCount, outputCount int, seed uint64) (*Network, error) {
	count, err := ParamCount(inputCount, hiddenCount, outputCount)
	if err != nil {
		return nil, err
	}

	// The source only lives for the duration of initialization.
	dist := distuv.Uniform{Min: -0.5, Max: 0.5, Src: rand.NewSource(seed)}

	weights := make([]float64, count)
	for i := range weights {
		weights[i] = dist.Rand()
	}
	biases := make([]float64, BiasCount)
	for i := range biases {
		biases[i] = dist.Rand()
	}

	return newNetwork(inputCount, hiddenCount, outputCount, weights, biases), nil
}

// NewFromParams creates a network from explicit parameters laid out as
// described in the package documentation. The slices are copied, so later
// changes by the caller are not observed by the network.
func NewFromParams(weights, biases []float64, inputCount, hiddenCount, outputCount int) (*Network, error) {
	count, err := ParamCount(inputCount, hiddenCount, outputCount)
	if err != nil {
		return nil, err
	}
	if len(weights) != count {
		return nil, fmt.Errorf("%w: got %d weights, want %d", ErrShapeMismatch, len(weights), count)
	}
	if len(biases) != BiasCount {
		return nil, fmt.Errorf("%w: got %d biases, want %d", ErrShapeMismatch, len(biases), BiasCount)
	}

	w := make([]float64, count)
	copy(w, weights)
	b := make([]float64, BiasCount)
	copy(b, biases)

	return newNetwork(inputCount, hiddenCount, outputCount, w, b), nil
}

// newNetwork adopts weights and biases and allocates the zeroed caches.
func newNetwork(inputCount, hiddenCount, outputCount int, weights, biases []float64) *Network {
	split := hiddenCount * inputCount
	hidden := make([]float64, hiddenCount)
	output := make([]float64, outputCount)

	return &Network{
		inputCount:  inputCount,
		hiddenCount: hiddenCount,
		outputCount: outputCount,
		weights:     weights,
		biases:      biases,
		wIH:         mat.NewDense(hiddenCount, inputCount, weights[:split]),
		wHO:         mat.NewDense(outputCount, hiddenCount, weights[split:]),
		hidden:      hidden,
		output:      output,
		hiddenVec:   mat.NewVecDense(hiddenCount, hidden),
		outputVec:   mat.NewVecDense(outputCount, output),
		outDelta:    mat.NewVecDense(outputCount, nil),
		hiddenDelta: mat.NewVecDense(hiddenCount, nil),
	}
}

// Predict runs a forward pass and returns a copy of the output activations.
func (n *Network) Predict(input []float64) ([]float64, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}

	n.forward(input)

	out := make([]float64, n.outputCount)
	copy(out, n.output)
	return out, nil
}

// Train performs one stochastic gradient descent step on a single record.
// Only weights change; biases keep their initial values. On error the
// network is left untouched.
//
// Train does not report the error of the record. Call TotalError afterwards,
// which measures the output of the forward pass that preceded the update.
func (n *Network) Train(input, expected []float64, learningRate float64) error {
	if err := n.checkInput(input); err != nil {
		return err
	}
	if err := n.checkExpected(expected); err != nil {
		return err
	}
	if learningRate <= 0 || math.IsNaN(learningRate) || math.IsInf(learningRate, 0) {
		return fmt.Errorf("%w: learning rate must be positive and finite, got %v", ErrInvalidArgument, learningRate)
	}

	x := n.forward(input)
	n.backward(x, expected, learningRate)
	return nil
}

// TotalError returns sum(0.5 * (expected - actual)^2) over the output of the
// last forward pass. It does not run a forward pass itself.
func (n *Network) TotalError(expected []float64) (float64, error) {
	if err := n.checkExpected(expected); err != nil {
		return 0, err
	}
	return n.loss.Forward(n.output, expected), nil
}

// forward computes hidden then output activations and returns the input
// wrapped as a vector for reuse by the backward pass.
func (n *Network) forward(input []float64) *mat.VecDense {
	x := mat.NewVecDense(n.inputCount, input)

	// hidden = sigmoid(W_ih * x + b0)
	n.hiddenVec.MulVec(n.wIH, x)
	for i := range n.hidden {
		n.hidden[i] = n.act.Activate(n.hidden[i] + n.biases[0])
	}

	// output = sigmoid(W_ho * hidden + b1)
	n.outputVec.MulVec(n.wHO, n.hiddenVec)
	for i := range n.output {
		n.output[i] = n.act.Activate(n.output[i] + n.biases[1])
	}

	return x
}

// backward applies the weight corrections for the last forward pass.
func (n *Network) backward(x *mat.VecDense, expected []float64, learningRate float64) {
	// Output deltas: dE/do_j * sigmoid'(o_j)
	outDelta := n.outDelta.RawVector().Data
	n.loss.BackwardInPlace(n.output, expected, outDelta)
	for j := range outDelta {
		outDelta[j] *= n.act.Derivative(n.output[j])
	}

	// Hidden error signals are taken against W_ho before it is corrected.
	n.hiddenDelta.MulVec(n.wHO.T(), n.outDelta)
	hiddenDelta := n.hiddenDelta.RawVector().Data
	for i := range hiddenDelta {
		hiddenDelta[i] *= n.act.Derivative(n.hidden[i])
	}

	// W_ho -= lr * outDelta * hidden^T
	n.wHO.RankOne(n.wHO, -learningRate, n.outDelta, n.hiddenVec)
	// W_ih -= lr * hiddenDelta * x^T
	n.wIH.RankOne(n.wIH, -learningRate, n.hiddenDelta, x)
}

func (n *Network) checkInput(input []float64) error {
	if len(input) != n.inputCount {
		return fmt.Errorf("%w: input length %d, want %d", ErrShapeMismatch, len(input), n.inputCount)
	}
	return nil
}

func (n *Network) checkExpected(expected []float64) error {
	if len(expected) != n.outputCount {
		return fmt.Errorf("%w: expected output length %d, want %d", ErrShapeMismatch, len(expected), n.outputCount)
	}
	return nil
}

// InputCount returns the number of input features.
func (n *Network) InputCount() int {
	return n.inputCount
}

// HiddenCount returns the number of hidden units.
func (n *Network) HiddenCount() int {
	return n.hiddenCount
}

// OutputCount returns the number of outputs.
func (n *Network) OutputCount() int {
	return n.outputCount
}

// Weights returns a copy of the flat weight buffer.
func (n *Network) Weights() []float64 {
	return append([]float64(nil), n.weights...)
}

// Biases returns a copy of the two biases.
func (n *Network) Biases() []float64 {
	return append([]float64(nil), n.biases...)
}

// HiddenActivations returns a copy of the last hidden layer outputs.
func (n *Network) HiddenActivations() []float64 {
	return append([]float64(nil), n.hidden...)
}

// OutputActivations returns a copy of the last output layer outputs.
func (n *Network) OutputActivations() []float64 {
	return append([]float64(nil), n.output...)
}

// Clone returns an independent copy of the network, caches included.
func (n *Network) Clone() *Network {
	c := newNetwork(n.inputCount, n.hiddenCount, n.outputCount, n.Weights(), n.Biases())
	copy(c.hidden, n.hidden)
	copy(c.output, n.output)
	return c
}
