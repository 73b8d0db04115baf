// Package train drives a network over a dataset: epochs of per-record
// training, shuffling between epochs, learning rate decay, and callbacks.
package train

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/GoTinn/internal/data"
	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
)

// Config holds hyperparameters for training.
type Config struct {
	Epochs       int
	LearningRate float64
	// Decay multiplies the learning rate after every epoch. 1 disables it.
	Decay float64
	// Shuffle reorders the dataset between epochs using a source seeded with Seed.
	Shuffle bool
	Seed    uint64
}

// DefaultConfig returns the settings used by the semeion example.
func DefaultConfig() Config {
	return Config{
		Epochs:       10,
		LearningRate: 1.0,
		Decay:        0.99,
		Shuffle:      true,
	}
}

// Validate checks that the configuration can drive a training run.
func (c Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.Decay <= 0 || c.Decay > 1 || math.IsNaN(c.Decay) {
		return fmt.Errorf("decay must be in (0, 1], got %v", c.Decay)
	}
	return nil
}

// EpochResult records one finished epoch.
type EpochResult struct {
	Epoch        int
	Loss         float64 // mean total error per record
	LearningRate float64 // rate used during the epoch
}

// History is the sequence of finished epochs.
type History []EpochResult

// Trainer runs training epochs over a dataset.
type Trainer struct {
	cfg       Config
	optimizer *opt.SGD
	scheduler opt.Scheduler
	rng       *rand.Rand
}

// NewTrainer creates a Trainer whose learning rate decays exponentially by
// cfg.Decay per epoch.
func NewTrainer(cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sgd, err := opt.NewSGD(cfg.LearningRate)
	if err != nil {
		return nil, err
	}

	return &Trainer{
		cfg:       cfg,
		optimizer: sgd,
		scheduler: opt.NewExponentialLR(sgd, cfg.Decay),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Optimizer returns the learning rate holder, for building custom schedulers.
func (t *Trainer) Optimizer() *opt.SGD {
	return t.optimizer
}

// SetScheduler replaces the default exponential decay.
func (t *Trainer) SetScheduler(s opt.Scheduler) {
	t.scheduler = s
}

// Fit trains n on every record of ds for the configured number of epochs.
// When shuffling is enabled the order of ds is changed in place.
func (t *Trainer) Fit(n *net.Network, ds *data.Dataset, callbacks ...Callback) (History, error) {
	if err := ds.Validate(n.InputCount(), n.OutputCount()); err != nil {
		return nil, fmt.Errorf("%w: %w", net.ErrShapeMismatch, err)
	}
	if ds.Len() == 0 {
		return nil, errors.New("dataset is empty")
	}

	// The scheduler runs after user callbacks so they observe the rate used
	// during the epoch.
	callbacks = append(callbacks[:len(callbacks):len(callbacks)], NewSchedulerCallback(t.scheduler))

	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}

	history := make(History, 0, t.cfg.Epochs)
	var err error
	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		var result EpochResult
		result, err = t.runEpoch(epoch, n, ds, callbacks)
		if err != nil {
			break
		}
		history = append(history, result)
		if stopRequested(callbacks) {
			break
		}
	}

	for _, cb := range callbacks {
		cb.OnTrainEnd(n)
	}
	return history, err
}

func (t *Trainer) runEpoch(epoch int, n *net.Network, ds *data.Dataset, callbacks []Callback) (EpochResult, error) {
	lr := t.optimizer.GetLR()
	for _, cb := range callbacks {
		cb.OnEpochBegin(epoch, n)
	}

	var total float64
	for i := range ds.Inputs {
		for _, cb := range callbacks {
			cb.OnBatchBegin(i, n)
		}
		if err := n.Train(ds.Inputs[i], ds.Targets[i], lr); err != nil {
			return EpochResult{}, fmt.Errorf("epoch %d, record %d: %w", epoch, i, err)
		}
		e, err := n.TotalError(ds.Targets[i])
		if err != nil {
			return EpochResult{}, fmt.Errorf("epoch %d, record %d: %w", epoch, i, err)
		}
		total += e
		for _, cb := range callbacks {
			cb.OnBatchEnd(i, e, n)
		}
	}

	if t.cfg.Shuffle {
		ds.Shuffle(t.rng)
	}

	loss := total / float64(ds.Len())
	for _, cb := range callbacks {
		cb.OnEpochEnd(epoch, loss, n)
	}
	return EpochResult{Epoch: epoch, Loss: loss, LearningRate: lr}, nil
}

func stopRequested(callbacks []Callback) bool {
	for _, cb := range callbacks {
		if s, ok := cb.(Stopper); ok && s.ShouldStop() {
			return true
		}
	}
	return false
}
