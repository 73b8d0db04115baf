package train

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/FlavioCFOliveira/GoTinn/internal/net"
	"github.com/FlavioCFOliveira/GoTinn/internal/opt"
)

// Callback defines the interface for training callbacks.
// A batch is a single record: training is strictly per sample.
type Callback interface {
	OnTrainBegin(n *net.Network)
	OnTrainEnd(n *net.Network)
	OnEpochBegin(epoch int, n *net.Network)
	OnEpochEnd(epoch int, loss float64, n *net.Network)
	OnBatchBegin(batch int, n *net.Network)
	OnBatchEnd(batch int, loss float64, n *net.Network)
}

// Stopper is implemented by callbacks that can end training early.
type Stopper interface {
	ShouldStop() bool
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *net.Network) {}
func (c BaseCallback) OnTrainEnd(n *net.Network) {}
func (c BaseCallback) OnEpochBegin(epoch int, n *net.Network) {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *net.Network) {}
func (c BaseCallback) OnBatchBegin(batch int, n *net.Network) {}
func (c BaseCallback) OnBatchEnd(batch int, loss float64, n *net.Network) {}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// SchedulerCallback is a callback that wraps a learning rate scheduler.
type SchedulerCallback struct {
	BaseCallback
	scheduler opt.Scheduler
}

func NewSchedulerCallback(scheduler opt.Scheduler) *SchedulerCallback {
	return &SchedulerCallback{scheduler: scheduler}
}

func (c *SchedulerCallback) OnEpochEnd(epoch int, loss float64, n *net.Network) {
	c.scheduler.Step()
	c.scheduler.StepWithLoss(loss)
}

// EarlyStopping stops training when the epoch loss has stopped improving.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64
	Out       io.Writer

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		bestLoss:  math.Inf(1),
	}
}

func (c *EarlyStopping) OnEpochEnd(epoch int, loss float64, n *net.Network) {
	if loss < c.bestLoss-c.Threshold {
		c.bestLoss = loss
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience {
		fmt.Fprintf(stdout(c.Out), "\nEarly stopping at epoch %d: loss %.6f did not improve for %d epochs\n", epoch, loss, c.Patience)
		c.Stopped = true
	}
}

func (c *EarlyStopping) ShouldStop() bool {
	return c.Stopped
}

// ModelCheckpoint saves the network after every epoch that improves on the best loss.
type ModelCheckpoint struct {
	BaseCallback
	Filename string
	Out      io.Writer

	bestLoss float64
	// Err holds the last save failure, if any.
	Err error
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		bestLoss: math.Inf(1),
	}
}

func (c *ModelCheckpoint) OnEpochEnd(epoch int, loss float64, n *net.Network) {
	if loss >= c.bestLoss {
		return
	}
	c.bestLoss = loss
	if err := n.SaveFile(c.Filename); err != nil {
		c.Err = err
		fmt.Fprintf(stdout(c.Out), "Error saving checkpoint: %v\n", err)
		return
	}
	fmt.Fprintf(stdout(c.Out), "Checkpoint saved: loss %.6f is new best\n", loss)
}

// Logger logs training progress to console.
type Logger struct {
	BaseCallback
	Interval int
	Out      io.Writer
}

func (c Logger) OnEpochEnd(epoch int, loss float64, n *net.Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Fprintf(stdout(c.Out), "Epoch %d: loss = %.6f\n", epoch, loss)
	}
}

// Progress prints a single updating line with the number of records trained.
type Progress struct {
	BaseCallback
	Total int // records across all epochs
	Every int // records between refreshes
	Label string
	Out   io.Writer

	done int
}

func NewProgress(total int, label string) *Progress {
	return &Progress{Total: total, Every: 100, Label: label}
}

func (c *Progress) OnBatchEnd(batch int, loss float64, n *net.Network) {
	c.done++
	if c.Every > 1 && c.done%c.Every != 0 && c.done != c.Total {
		return
	}
	pct := 0.0
	if c.Total > 0 {
		pct = 100 * float64(c.done) / float64(c.Total)
	}
	fmt.Fprintf(stdout(c.Out), "\r%s %d/%d (%.0f%%)", c.Label, c.done, c.Total, pct)
}

func (c *Progress) OnTrainEnd(n *net.Network) {
	fmt.Fprintln(stdout(c.Out))
}
