// Package data provides datasets of (input, expected output) records for
// training and evaluating networks.
package data

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Dataset holds parallel input and target vectors.
type Dataset struct {
	Inputs  [][]float64
	Targets [][]float64
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Inputs)
}

// Validate checks that inputs and targets pair up and that every record has
// inputCount features and outputCount targets.
func (d *Dataset) Validate(inputCount, outputCount int) error {
	if len(d.Inputs) != len(d.Targets) {
		return fmt.Errorf("dataset has %d inputs but %d targets", len(d.Inputs), len(d.Targets))
	}
	for i := range d.Inputs {
		if len(d.Inputs[i]) != inputCount {
			return fmt.Errorf("record %d has %d features, want %d", i, len(d.Inputs[i]), inputCount)
		}
		if len(d.Targets[i]) != outputCount {
			return fmt.Errorf("record %d has %d targets, want %d", i, len(d.Targets[i]), outputCount)
		}
	}
	return nil
}

// Shuffle permutes the records in place, keeping inputs and targets paired.
// The random source belongs to the caller so runs can be reproduced.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Inputs), func(i, j int) {
		d.Inputs[i], d.Inputs[j] = d.Inputs[j], d.Inputs[i]
		d.Targets[i], d.Targets[j] = d.Targets[j], d.Targets[i]
	})
}

// Normalize performs min-max normalization on the inputs, per feature.
// Constant features become 0.
func (d *Dataset) Normalize() {
	if len(d.Inputs) == 0 {
		return
	}

	numFeatures := len(d.Inputs[0])
	lo := make([]float64, numFeatures)
	hi := make([]float64, numFeatures)
	copy(lo, d.Inputs[0])
	copy(hi, d.Inputs[0])

	for _, sample := range d.Inputs {
		for i, val := range sample {
			lo[i] = min(lo[i], val)
			hi[i] = max(hi[i], val)
		}
	}

	for _, sample := range d.Inputs {
		for i := range sample {
			diff := hi[i] - lo[i]
			if diff != 0 {
				sample[i] = (sample[i] - lo[i]) / diff
			} else {
				sample[i] = 0
			}
		}
	}
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test) sharing the record slices.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Inputs)) * ratio)

	train := &Dataset{
		Inputs:  d.Inputs[:splitIdx],
		Targets: d.Targets[:splitIdx],
	}

	test := &Dataset{
		Inputs:  d.Inputs[splitIdx:],
		Targets: d.Targets[splitIdx:],
	}

	return train, test
}

// OneHot returns a vector of length size with a 1 at idx.
func OneHot(idx, size int) []float64 {
	v := make([]float64, size)
	v[idx] = 1
	return v
}

// Class returns the index of the largest value of a target or prediction.
func Class(v []float64) int {
	return floats.MaxIdx(v)
}
