// Package tinn is the public entry point: a tiny neural network with one
// hidden sigmoid layer, trained one sample at a time and saved as text.
package tinn

import (
	"io"

	"github.com/FlavioCFOliveira/GoTinn/internal/data"
	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
	"github.com/FlavioCFOliveira/GoTinn/internal/train"
)

// Re-export common types and functions for easier access
type (
	Network   = net.Network
	Dataset   = data.Dataset
	Trainer   = train.Trainer
	Config    = train.Config
	History   = train.History
	Callback  = train.Callback
	Scheduler = opt.Scheduler
)

// Errors
var (
	ErrShapeMismatch   = net.ErrShapeMismatch
	ErrCorruptFormat   = net.ErrCorruptFormat
	ErrInvalidArgument = net.ErrInvalidArgument
)

// FileExt is the conventional extension for saved networks.
const FileExt = net.FileExt

// Network creation
func New(inputCount, hiddenCount, outputCount int, seed uint64) (*Network, error) {
	return net.New(inputCount, hiddenCount, outputCount, seed)
}

func NewFromParams(weights, biases []float64, inputCount, hiddenCount, outputCount int) (*Network, error) {
	return net.NewFromParams(weights, biases, inputCount, hiddenCount, outputCount)
}

// Persistence
func Load(r io.Reader) (*Network, error) {
	return net.Load(r)
}

func LoadFile(filename string) (*Network, error) {
	return net.LoadFile(filename)
}

// Training
func DefaultConfig() Config {
	return train.DefaultConfig()
}

func NewTrainer(cfg Config) (*Trainer, error) {
	return train.NewTrainer(cfg)
}

func Evaluate(n *Network, ds *Dataset) (float64, error) {
	return train.Evaluate(n, ds)
}

// Callbacks
func Logger(interval int) Callback {
	return train.Logger{Interval: interval}
}

func EarlyStopping(patience int, threshold float64) *train.EarlyStopping {
	return train.NewEarlyStopping(patience, threshold)
}

func ModelCheckpoint(filename string) *train.ModelCheckpoint {
	return train.NewModelCheckpoint(filename)
}

func CSVLogger(filename string, append bool) *train.CSVLogger {
	return train.NewCSVLogger(filename, append)
}

// Datasets
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return data.LoadCSV(filename, labelCols, hasHeader)
}

func LoadDelimitedFile(filename string, inputCount, outputCount int) (*Dataset, error) {
	return data.LoadDelimitedFile(filename, inputCount, outputCount)
}
