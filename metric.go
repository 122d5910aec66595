// metric.go
package sqlexec

import (
	"time"

	"go.uber.org/zap"
)

// metric times the phases of one statement execution. Each checkpoint
// records the elapsed time since the previous one, so the checkpoints sum to
// the total. Not safe for concurrent use; one metric belongs to one
// execution.
type metric struct {
	start time.Time
	last  time.Time
	marks []phase
}

type phase struct {
	name string
	d    time.Duration
}

func newMetric() *metric {
	now := time.Now()
	return &metric{start: now, last: now}
}

func (m *metric) checkpoint(name string) {
	now := time.Now()
	m.marks = append(m.marks, phase{name: name, d: now.Sub(m.last)})
	m.last = now
}

// done records the final phase and returns the total elapsed time.
func (m *metric) done(name string) time.Duration {
	m.checkpoint(name)
	return m.last.Sub(m.start)
}

// fields renders the phase durations for a structured log record.
func (m *metric) fields() []zap.Field {
	out := make([]zap.Field, 0, len(m.marks)+1)
	for _, p := range m.marks {
		out = append(out, zap.Duration(p.name, p.d))
	}
	out = append(out, zap.Duration("total", m.last.Sub(m.start)))
	return out
}
