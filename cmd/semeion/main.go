// semeion trains a 256-28-10 network on the semeion handwritten digit set.
//
// Usage:
//
//	semeion --data=semeion.data --epochs=10 --lr=1.0 --decay=0.99
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/FlavioCFOliveira/GoTinn/internal/data"
	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/train"
)

const (
	inputs  = 256 // 16x16 bitmap
	outputs = 10  // one-hot digit
)

var (
	dataFile     = flag.String("data", "semeion.data", "Path to the semeion data file, downloaded if missing")
	hidden       = flag.Int("hidden", 28, "Number of hidden neurons")
	epochs       = flag.Int("epochs", 10, "Number of training epochs")
	learningRate = flag.Float64("lr", 1.0, "Initial learning rate")
	decay        = flag.Float64("decay", 0.99, "Learning rate decay per epoch")
	seed         = flag.Uint64("seed", 0, "Seed for weight initialization and shuffling")
	outputFile   = flag.String("output", "semeion"+net.FileExt, "Where to save the trained network")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	downloaded, err := data.Download(ctx, http.DefaultClient, data.SemeionURL, *dataFile)
	if err != nil {
		return err
	}
	if downloaded {
		fmt.Printf("Downloaded %s\n", *dataFile)
	}

	ds, err := data.LoadDelimitedFile(*dataFile, inputs, outputs)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d samples\n", ds.Len())

	network, err := net.New(inputs, *hidden, outputs, *seed)
	if err != nil {
		return err
	}
	network.Summary(os.Stdout)

	trainer, err := train.NewTrainer(train.Config{
		Epochs:       *epochs,
		LearningRate: *learningRate,
		Decay:        *decay,
		Shuffle:      true,
		Seed:         *seed,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	progress := train.NewProgress(*epochs*ds.Len(), "Training...")
	history, err := trainer.Fit(network, ds, train.Logger{Interval: 1}, progress)
	if err != nil {
		return err
	}
	last := history[len(history)-1]
	fmt.Printf("Training took %v, final error %.6f, learning rate %.6f\n",
		time.Since(start).Round(time.Millisecond), last.Loss, last.LearningRate)

	acc, err := train.Evaluate(network, ds)
	if err != nil {
		return err
	}
	fmt.Printf("Accuracy: %.2f%%\n", acc*100)

	if err := network.SaveFile(*outputFile); err != nil {
		return err
	}
	fmt.Printf("Network saved to %s\n", *outputFile)

	// Reload and show one prediction next to its target.
	loaded, err := net.LoadFile(*outputFile)
	if err != nil {
		return err
	}
	pred, err := loaded.Predict(ds.Inputs[0])
	if err != nil {
		return err
	}
	fmt.Printf("Target:     %v\n", formatVector(ds.Targets[0]))
	fmt.Printf("Prediction: %v\n", formatVector(pred))
	fmt.Printf("Predicted digit %d, expected %d\n", data.Class(pred), data.Class(ds.Targets[0]))
	return nil
}

func formatVector(v []float64) string {
	s := ""
	for i, x := range v {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.3f", x)
	}
	return s
}
