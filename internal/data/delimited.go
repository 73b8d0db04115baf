package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadDelimited reads whitespace separated records, one per line: the first
// inputCount values are features, the next outputCount values are targets.
// This is the layout of the semeion handwritten digit set (256 pixels and a
// one-hot digit). Blank lines are skipped; extra trailing values are an error.
func LoadDelimited(r io.Reader, inputCount, outputCount int) (*Dataset, error) {
	if inputCount <= 0 || outputCount <= 0 {
		return nil, fmt.Errorf("invalid record shape %d+%d", inputCount, outputCount)
	}

	ds := &Dataset{}
	width := inputCount + outputCount
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != width {
			return nil, fmt.Errorf("line %d: got %d values, want %d", line, len(fields), width)
		}

		values := make([]float64, width)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, col %d: %w", line, i, err)
			}
			values[i] = v
		}

		ds.Inputs = append(ds.Inputs, values[:inputCount:inputCount])
		ds.Targets = append(ds.Targets, values[inputCount:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("no records found")
	}

	return ds, nil
}

// LoadDelimitedFile reads whitespace separated records from the named file.
func LoadDelimitedFile(filename string, inputCount, outputCount int) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadDelimited(file, inputCount, outputCount)
}
