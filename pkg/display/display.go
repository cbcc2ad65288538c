// Package display paints a periodically refreshed status line, used
// by long-running commands to show live progress.
package display

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

type Displayer interface {
	// Display writes the current status and reports whether the
	// display should keep refreshing.
	Display(io.Writer) bool
}

type Display struct {
	live     *uilive.Writer
	interval time.Duration
	updater  Displayer
	buffer   *bytes.Buffer
	closeCh  chan struct{}
	once     sync.Once
	done     sync.WaitGroup
}

func New(updater Displayer, interval time.Duration, out io.Writer) *Display {
	live := uilive.New()
	if out != nil {
		live.Out = out
	}
	return &Display{
		live:     live,
		interval: interval,
		updater:  updater,
		buffer:   bytes.NewBuffer(nil),
		closeCh:  make(chan struct{}),
	}
}

func (d *Display) update() bool {
	d.buffer.Reset()
	cont := d.updater.Display(d.buffer)
	// Ignore write errors; a broken status line should not kill the
	// command doing the work.
	_, _ = io.Copy(d.live, d.buffer)
	_ = d.live.Flush()
	return cont
}

func (d *Display) Run() {
	d.done.Add(1)
	defer d.done.Done()
	for {
		if !d.update() {
			return
		}
		select {
		case <-d.closeCh:
			return
		case <-time.After(d.interval):
		}
	}
}

// Bypass returns a writer whose output scrolls above the status line.
func (d *Display) Bypass() io.Writer {
	return d.live.Bypass()
}

// Close stops refreshing, waits for Run to return, and paints the
// final state.
func (d *Display) Close() {
	d.once.Do(func() { close(d.closeCh) })
	d.done.Wait()
	d.update()
}
