// Package opt provides the learning rate holder and schedules used when
// training with plain stochastic gradient descent.
package opt

import (
	"fmt"
	"math"
)

// Optimizer supplies the learning rate used for each training step.
type Optimizer interface {
	GetLR() float64
	SetLR(lr float64)
}

// SGD (Stochastic Gradient Descent) with a single scalar learning rate.
// The network applies the update itself; SGD only owns the rate.
type SGD struct {
	LearningRate float64
}

// NewSGD creates an SGD optimizer. The learning rate must be positive and finite.
func NewSGD(learningRate float64) (*SGD, error) {
	if learningRate <= 0 || math.IsNaN(learningRate) || math.IsInf(learningRate, 0) {
		return nil, fmt.Errorf("invalid learning rate: %v", learningRate)
	}
	return &SGD{LearningRate: learningRate}, nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.LearningRate
}

// SetLR replaces the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.LearningRate = lr
}
