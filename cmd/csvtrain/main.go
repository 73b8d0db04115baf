// csvtrain trains a network on any CSV file of numeric columns.
//
// Usage:
//
//	csvtrain --data=iris.csv --labels=4,5,6 --hidden=8 --epochs=200
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/GoTinn/internal/data"
	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
	"github.com/FlavioCFOliveira/GoTinn/internal/train"
)

var (
	dataFile     = flag.String("data", "", "CSV file to train on")
	labels       = flag.String("labels", "", "Comma separated indexes of the target columns")
	header       = flag.Bool("header", true, "Whether the first row is a header")
	normalize    = flag.Bool("normalize", true, "Scale features to [0, 1]")
	split        = flag.Float64("split", 0.8, "Fraction of rows used for training")
	hidden       = flag.Int("hidden", 8, "Number of hidden neurons")
	epochs       = flag.Int("epochs", 100, "Number of training epochs")
	learningRate = flag.Float64("lr", 0.5, "Initial learning rate")
	decay        = flag.Float64("decay", 0.99, "Learning rate decay per epoch")
	plateau      = flag.Bool("plateau", false, "Reduce the learning rate when the loss plateaus instead of decaying")
	patience     = flag.Int("patience", 0, "Stop after this many epochs without improvement (0 disables)")
	seed         = flag.Uint64("seed", 42, "Random seed")
	logEvery     = flag.Int("log", 10, "Epochs between log lines")
	historyFile  = flag.String("history", "", "Optional CSV file for per-epoch loss")
	outputFile   = flag.String("output", "model"+net.FileExt, "Where to save the best network")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *dataFile == "" || *labels == "" {
		flag.Usage()
		return fmt.Errorf("both --data and --labels are required")
	}
	labelCols, err := parseColumns(*labels)
	if err != nil {
		return err
	}

	ds, err := data.LoadCSV(*dataFile, labelCols, *header)
	if err != nil {
		return err
	}
	if *normalize {
		ds.Normalize()
	}
	trainSet, testSet := ds.Split(*split)
	inputCount := len(ds.Inputs[0])
	outputCount := len(ds.Targets[0])
	fmt.Printf("Loaded %d rows: %d train, %d test, %d features, %d targets\n",
		ds.Len(), trainSet.Len(), testSet.Len(), inputCount, outputCount)

	network, err := net.New(inputCount, *hidden, outputCount, *seed)
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
	if *plateau {
		trainer.SetScheduler(opt.NewReduceLROnPlateau(trainer.Optimizer(), 0.5, 5, 1e-4, 1e-4).WithCooldown(2))
	}

	checkpoint := train.NewModelCheckpoint(*outputFile)
	callbacks := []train.Callback{train.Logger{Interval: *logEvery}, checkpoint}
	if *patience > 0 {
		callbacks = append(callbacks, train.NewEarlyStopping(*patience, 1e-6))
	}
	var history *train.CSVLogger
	if *historyFile != "" {
		history = train.NewCSVLogger(*historyFile, false)
		callbacks = append(callbacks, history)
	}

	if _, err := trainer.Fit(network, trainSet, callbacks...); err != nil {
		return err
	}
	if checkpoint.Err != nil {
		return checkpoint.Err
	}
	if history != nil && history.Err != nil {
		return history.Err
	}

	best, err := net.LoadFile(*outputFile)
	if err != nil {
		return err
	}
	eval := testSet
	if eval.Len() == 0 {
		eval = trainSet
	}
	loss, err := train.EvaluateLoss(best, eval)
	if err != nil {
		return err
	}
	fmt.Printf("Best network saved to %s, evaluation error %.6f\n", *outputFile, loss)
	if outputCount > 1 {
		acc, err := train.Evaluate(best, eval)
		if err != nil {
			return err
		}
		fmt.Printf("Accuracy: %.2f%%\n", acc*100)
	}
	return nil
}

func parseColumns(s string) ([]int, error) {
	var cols []int
	for _, field := range strings.Split(s, ",") {
		col, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid column %q: %w", field, err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}
