package net

import (
	"fmt"
	"io"
)

// Summary prints a summary of the network architecture.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: Tinn")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "%-25s %-20s %-10d\n", "Input", fmt.Sprintf("(%d)", n.inputCount), 0)
	fmt.Fprintf(w, "%-25s %-20s %-10d\n", "Hidden (Sigmoid)", fmt.Sprintf("(%d)", n.hiddenCount), n.hiddenCount*n.inputCount+1)
	fmt.Fprintf(w, "%-25s %-20s %-10d\n", "Output (Sigmoid)", fmt.Sprintf("(%d)", n.outputCount), n.outputCount*n.hiddenCount+1)
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", len(n.weights)+len(n.biases))
	fmt.Fprintf(w, "Trainable params: %d\n", len(n.weights))
	fmt.Fprintln(w, "_________________________________________________________________")
}
