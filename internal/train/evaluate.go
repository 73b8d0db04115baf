package train

import (
	"errors"
	"fmt"

	"github.com/FlavioCFOliveira/GoTinn/internal/data"
	"github.com/FlavioCFOliveira/GoTinn/internal/net"
)

// Evaluate returns the fraction of records whose predicted class (index of
// the largest output) equals the class of the target.
func Evaluate(n *net.Network, ds *data.Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, errors.New("dataset is empty")
	}
	if err := ds.Validate(n.InputCount(), n.OutputCount()); err != nil {
		return 0, fmt.Errorf("%w: %w", net.ErrShapeMismatch, err)
	}

	correct := 0
	for i := range ds.Inputs {
		pred, err := n.Predict(ds.Inputs[i])
		if err != nil {
			return 0, err
		}
		if data.Class(pred) == data.Class(ds.Targets[i]) {
			correct++
		}
	}
	return float64(correct) / float64(ds.Len()), nil
}

// EvaluateLoss returns the mean total error over ds without training.
func EvaluateLoss(n *net.Network, ds *data.Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, errors.New("dataset is empty")
	}
	if err := ds.Validate(n.InputCount(), n.OutputCount()); err != nil {
		return 0, fmt.Errorf("%w: %w", net.ErrShapeMismatch, err)
	}

	var total float64
	for i := range ds.Inputs {
		if _, err := n.Predict(ds.Inputs[i]); err != nil {
			return 0, err
		}
		e, err := n.TotalError(ds.Targets[i])
		if err != nil {
			return 0, err
		}
		total += e
	}
	return total / float64(ds.Len()), nil
}
