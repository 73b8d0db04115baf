package train

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/FlavioCFOliveira/GoTinn/internal/net"
)

// CSVLogger logs training progress to a CSV file.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
	// Err holds the first failure to open or write the file.
	Err error
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
	}
}

func (c *CSVLogger) OnTrainBegin(n *net.Network) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		c.Err = fmt.Errorf("CSVLogger: failed to open file %s: %w", c.Filename, err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	// Write header if not appending or if file is empty
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.write([]string{"epoch", "loss", "time_seconds"})
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, n *net.Network) {
	if c.writer == nil {
		return
	}

	elapsed := time.Since(c.start).Seconds()
	c.write([]string{
		strconv.Itoa(epoch),
		strconv.FormatFloat(loss, 'f', 6, 64),
		strconv.FormatFloat(elapsed, 'f', 2, 64),
	})
}

func (c *CSVLogger) write(record []string) {
	if err := c.writer.Write(record); err != nil && c.Err == nil {
		c.Err = fmt.Errorf("CSVLogger: failed to write record: %w", err)
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil && c.Err == nil {
		c.Err = fmt.Errorf("CSVLogger: failed to flush: %w", err)
	}
}

func (c *CSVLogger) OnTrainEnd(n *net.Network) {
	if c.file != nil {
		c.writer.Flush()
		c.file.Close()
		c.file = nil
		c.writer = nil
	}
}
