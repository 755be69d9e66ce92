package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/katalvlaran/hsml/interaction"
	"github.com/katalvlaran/hsml/matrix"
)

const barWidth = 30

// bar is a single-line terminal progress bar.
type bar struct {
	w io.Writer

	mu    sync.Mutex
	desc  string
	total int
	done  int
}

var _ interaction.Progress = (*bar)(nil)

func newBar(w io.Writer) *bar { return &bar{w: w} }

func (b *bar) Start(total int, desc string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total, b.desc, b.done = total, desc, 0
	b.draw()
}

func (b *bar) Add(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done += n
	b.draw()
}

func (b *bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.w)
}

func (b *bar) draw() {
	filled := 0
	if b.total > 0 {
		filled = min(b.done*barWidth/b.total, barWidth)
	}
	fmt.Fprintf(b.w, "\r%s [%s%s] %d/%d",
		b.desc,
		color.GreenString(strings.Repeat("#", filled)),
		strings.Repeat(" ", barWidth-filled),
		b.done, b.total)
}

type summary struct {
	size    int
	nonzero int
	nan     int
	maxAbs  float64
	blocks  int
	largest int

	spectrum       bool
	eigMin, eigMax float64
}

// addSpectrum records the extreme eigenvalues of m.
func (s *summary) addSpectrum(m *matrix.Dense) error {
	values, _, err := matrix.EigenSym(m, 1e-12, matrix.DefaultEigenSweeps)
	if err != nil {
		return err
	}
	s.spectrum = true
	s.eigMin, s.eigMax = values[0], values[len(values)-1]

	return nil
}

func summarize(m *matrix.Dense) summary {
	s := summary{size: m.Rows()}
	m.Do(func(_, _ int, v float64) bool {
		switch {
		case math.IsNaN(v):
			s.nan++
		case v != 0:
			s.nonzero++
			s.maxAbs = math.Max(s.maxAbs, math.Abs(v))
		}

		return true
	})
	if blocks, err := matrix.Blocks(m, 0); err == nil {
		s.blocks = len(blocks)
		for _, b := range blocks {
			s.largest = max(s.largest, len(b))
		}
	}

	return s
}

func printSummary(w io.Writer, kind interaction.Kind, s summary, location string) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "%s matrix\n", kind)
	fmt.Fprintf(w, "  size     %d x %d\n", s.size, s.size)
	fmt.Fprintf(w, "  nonzero  %d\n", s.nonzero)
	fmt.Fprintf(w, "  max |v|  %.6g\n", s.maxAbs)
	fmt.Fprintf(w, "  blocks   %d (largest %d)\n", s.blocks, s.largest)
	if s.spectrum {
		fmt.Fprintf(w, "  spectrum [%.6g, %.6g]\n", s.eigMin, s.eigMax)
	}
	if s.nan > 0 {
		color.New(color.FgYellow).Fprintf(w, "  nan      %d\n", s.nan)
	}
	fmt.Fprintf(w, "  cache    %s\n", location)
}
