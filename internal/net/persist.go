package net

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// FileExt is the conventional extension of saved networks.
const FileExt = ".tinn"

// maxPrealloc caps the weight buffer allocated up front by Load so a header
// cannot request more memory than the stream actually carries.
const maxPrealloc = 1 << 16

// Save writes the network in the .tinn text format: a header line with the
// three counts, the two biases and then every weight, one value per line.
// Values use the shortest decimal form that parses back to the same float64.
func (n *Network) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d %d %d\n", n.inputCount, n.hiddenCount, n.outputCount)
	for _, b := range n.biases {
		writeValue(bw, b)
	}
	for _, v := range n.weights {
		writeValue(bw, v)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write network: %w", err)
	}
	return nil
}

func writeValue(w *bufio.Writer, v float64) {
	var buf [32]byte
	w.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64))
	w.WriteByte('\n')
}

// SaveFile writes the network to the named file, truncating it.
func (n *Network) SaveFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := n.Save(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Load reads a network in the .tinn text format. Any malformed header,
// missing line or non-numeric value fails with ErrCorruptFormat and no
// network is returned. Lines after the last weight are ignored.
func Load(r io.Reader) (*Network, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}

	header, err := lr.next()
	if err != nil {
		return nil, err
	}
	inputCount, hiddenCount, outputCount, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	count, err := ParamCount(inputCount, hiddenCount, outputCount)
	if err != nil {
		return nil, fmt.Errorf("%w: line 1: %w", ErrCorruptFormat, err)
	}

	biases := make([]float64, BiasCount)
	for i := range biases {
		if biases[i], err = lr.nextValue(); err != nil {
			return nil, err
		}
	}

	weights := make([]float64, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		v, err := lr.nextValue()
		if err != nil {
			return nil, err
		}
		weights = append(weights, v)
	}

	return newNetwork(inputCount, hiddenCount, outputCount, weights, biases), nil
}

// LoadFile reads a network from the named .tinn file.
func LoadFile(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Load(file)
}

func parseHeader(line string) (int, int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: line 1: header needs 3 counts, got %d fields", ErrCorruptFormat, len(fields))
	}

	var counts [3]int
	for i, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: line 1: %w", ErrCorruptFormat, err)
		}
		counts[i] = c
	}
	return counts[0], counts[1], counts[2], nil
}

// lineReader yields trimmed lines and tracks the line number for errors.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (lr *lineReader) next() (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: line %d: %w", ErrCorruptFormat, lr.line+1, err)
		}
		return "", fmt.Errorf("%w: line %d: unexpected end of input", ErrCorruptFormat, lr.line+1)
	}
	lr.line++
	return strings.TrimSpace(lr.scanner.Text()), nil
}

func (lr *lineReader) nextValue() (float64, error) {
	s, err := lr.next()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %w", ErrCorruptFormat, lr.line, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: line %d: value %q is not finite", ErrCorruptFormat, lr.line, s)
	}
	return v, nil
}
