package interaction

import (
	"sync"

	"go.uber.org/zap"
)

// Progress receives assembly progress. One Add(1) is reported per
// completed row; Add may be called from several goroutines.
type Progress interface {
	Start(total int, desc string)
	Add(n int)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int, string) {}
func (nopProgress) Add(int)           {}
func (nopProgress) Finish()           {}

// LogProgress reports progress as zap Info entries every step percent.
type LogProgress struct {
	log  *zap.Logger
	step int

	mu    sync.Mutex
	desc  string
	total int
	done  int
	next  int // next percentage to report
}

// NewLogProgress returns a Progress logging to log every step percent.
// step outside [1,100] is clamped.
func NewLogProgress(log *zap.Logger, step int) *LogProgress {
	if log == nil {
		log = zap.NewNop()
	}
	step = min(max(step, 1), 100)

	return &LogProgress{log: log, step: step}
}

// Start resets the counters.
func (p *LogProgress) Start(total int, desc string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.desc, p.total, p.done, p.next = desc, total, 0, p.step
	p.log.Info(desc, zap.Int("total", total))
}

// Add advances by n and logs each crossed step.
func (p *LogProgress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += n
	if p.total <= 0 {
		return
	}
	pct := p.done * 100 / p.total
	if pct < p.next {
		return
	}
	p.log.Info(p.desc,
		zap.Int("done", p.done),
		zap.Int("total", p.total),
		zap.Int("percent", pct),
	)
	for p.next <= pct {
		p.next += p.step
	}
}

// Finish logs the final count.
func (p *LogProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Debug(p.desc+" finished", zap.Int("done", p.done), zap.Int("total", p.total))
}

// Done returns the number of units reported so far.
func (p *LogProgress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.done
}
