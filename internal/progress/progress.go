// Package progress reports batch progress on stderr.
package progress

import (
	"io"
	"time"

	"gopkg.in/cheggaaa/pb.v1"
)

// Reporter counts finished sequences.
type Reporter interface {
	Increment() int
	Finish()
}

// Bar is a terminal progress bar over a fixed number of sequences.
type Bar struct {
	pb *pb.ProgressBar
}

// NewBar starts a progress bar for total items writing to w.
func NewBar(w io.Writer, total int) *Bar {
	b := pb.New(total)
	b.Output = w
	b.ShowSpeed = true
	b.ShowTimeLeft = true
	b.SetRefreshRate(200 * time.Millisecond)
	b.Start()
	return &Bar{pb: b}
}

func (b *Bar) Increment() int { return b.pb.Increment() }

// Finish stops refreshing and prints the final state.
func (b *Bar) Finish() { b.pb.Finish() }

// Nop is a Reporter that only counts.
type Nop struct{ n int64 }

func (n *Nop) Increment() int { n.n++; return int(n.n) }
func (*Nop) Finish()          {}

// New returns a progress bar when enabled is true and a Nop otherwise.
func New(w io.Writer, total int, enabled bool) Reporter {
	if !enabled || total <= 0 {
		return &Nop{}
	}
	return NewBar(w, total)
}
