package main

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/GoTinn/internal/data"
	"github.com/FlavioCFOliveira/GoTinn/internal/net"
)

func main() {
	fmt.Println("=== XOR Training Example ===")

	// XOR is not linearly separable, so it needs the hidden layer.
	in := 2
	hidden := 8
	out := 1

	fmt.Printf("Network architecture: %d-%d-%d\n", in, hidden, out)
	fmt.Println("Activation functions: Sigmoid (hidden and output)")
	fmt.Println("Loss function: squared error")

	network, err := net.New(in, hidden, out, 0)
	if err != nil {
		fmt.Printf("Error creating network: %v\n", err)
		return
	}

	ds := &data.Dataset{
		Inputs: [][]float64{
			{0, 0},
			{0, 1},
			{1, 0},
			{1, 1},
		},
		Targets: [][]float64{
			{0},
			{1},
			{1},
			{0},
		},
	}

	rng := rand.New(rand.NewSource(0))
	rate := 1.0
	const decay = 0.9999

	for epoch := 0; epoch < 6000; epoch++ {
		totalError := 0.0
		for i := range ds.Inputs {
			if err := network.Train(ds.Inputs[i], ds.Targets[i], rate); err != nil {
				fmt.Printf("Error training: %v\n", err)
				return
			}
			e, _ := network.TotalError(ds.Targets[i])
			totalError += e
		}
		ds.Shuffle(rng)
		rate *= decay
		if epoch%500 == 0 {
			fmt.Printf("Epoch %d, Error: %.6f, Learning rate: %.4f\n", epoch, totalError/float64(ds.Len()), rate)
		}
	}

	fmt.Println("\nTesting trained network:")
	for i := range ds.Inputs {
		pred, _ := network.Predict(ds.Inputs[i])
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", ds.Inputs[i], pred[0], ds.Targets[i][0])
	}

	fmt.Println("\nSaving network to disk...")
	filename := "xor" + net.FileExt
	if err := network.SaveFile(filename); err != nil {
		fmt.Printf("Error saving network: %v\n", err)
		return
	}
	fmt.Println("Network saved successfully!")

	fmt.Println("Loading network from disk...")
	loaded, err := net.LoadFile(filename)
	if err != nil {
		fmt.Printf("Error loading network: %v\n", err)
		return
	}

	fmt.Println("\nVerifying loaded network:")
	allMatch := true
	for i := range ds.Inputs {
		original, _ := network.Predict(ds.Inputs[i])
		restored, _ := loaded.Predict(ds.Inputs[i])
		match := "OK"
		if math.Abs(original[0]-restored[0]) > 1e-12 {
			match = "MISMATCH"
			allMatch = false
		}
		fmt.Printf("Input: %v, Original: %.4f, Loaded: %.4f [%s]\n", ds.Inputs[i], original[0], restored[0], match)
	}

	if allMatch {
		fmt.Println("\nSUCCESS: All predictions match between original and loaded network!")
	} else {
		fmt.Println("\nFAILURE: Predictions differ between original and loaded network!")
	}
}
