// Package progress draws a one-line console spinner while a scan runs.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// DefaultLabel is drawn in front of the spinner glyph
const DefaultLabel = "Scanning..."

var glyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

// Indicator redraws "<label> <glyph>" in place until stopped.
// The zero value is not usable; create one with New.
type Indicator struct {
	out      io.Writer
	label    string
	interval time.Duration

	mu      sync.Mutex // serializes Start/Stop
	running atomic.Bool
	frames  atomic.Uint64
	stop    chan struct{}
	done    chan struct{}

	// only touched by the draw goroutine while running
	model spinner.Model
}

// New creates an idle indicator that draws to out
func New(out io.Writer) *Indicator {
	return &Indicator{
		out:      out,
		label:    DefaultLabel,
		interval: spinner.Line.FPS,
	}
}

// Start begins drawing in the background. It does nothing if the
// indicator is already running.
func (p *Indicator) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return
	}

	p.model = spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(glyphStyle))
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.running.Store(true)

	go p.loop(p.stop, p.done)
}

// Stop halts drawing and returns only after the background goroutine has
// exited and the status line has been cleared. It does nothing if the
// indicator is idle.
func (p *Indicator) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() {
		return
	}

	p.running.Store(false)
	close(p.stop)
	<-p.done

	p.stop = nil
	p.done = nil
}

// Running reports whether the spinner is currently drawing
func (p *Indicator) Running() bool {
	return p.running.Load()
}

// Frames returns how many frames have been drawn since creation
func (p *Indicator) Frames() uint64 {
	return p.frames.Load()
}

func (p *Indicator) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.draw()

		select {
		case <-stop:
			p.clear()
			return
		case <-ticker.C:
		}

		if !p.running.Load() {
			p.clear()
			return
		}
	}
}

// draw prints the current glyph and advances the spinner one frame
func (p *Indicator) draw() {
	fmt.Fprintf(p.out, "\r%s %s", p.label, p.model.View())
	p.model, _ = p.model.Update(p.model.Tick())
	p.frames.Add(1)
}

func (p *Indicator) clear() {
	width := lipgloss.Width(p.label) + 2
	fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", width))
}
