package emitter

import (
	"io"

	"github.com/outblocks/emit/pkg/printer"
)

// Progresser is the scoped controller returned by ProgressBar. Call
// Advance for each unit of progress and Done when the step is over.
type Progresser struct {
	e      *Emitter
	stream io.Writer
	text   string
	total  float64
	delta  bool

	useTimestamp bool
	accumulated  float64
	done         bool
}

// ProgressBar starts progress indication for a potentially long-running
// single step, e.g. a download. It shows (and logs) a start marker; the
// bar renders in between are screen-only. In delta mode each Advance
// accumulates; otherwise each Advance supplies the total so far.
func (e *Emitter) ProgressBar(text string, total float64, delta bool) *Progresser {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	pol := policies[e.mode].progress
	stream := e.progressStream(pol)

	e.printer.Show(stream, text+" (--->)", printer.ShowOptions{
		Ephemeral:    pol.ephemeral,
		UseTimestamp: pol.timestamp,
	})

	return &Progresser{
		e:            e,
		stream:       stream,
		text:         text,
		total:        total,
		delta:        delta,
		useTimestamp: pol.timestamp,
	}
}

// Advance renders the bar according to the informed progress. Negative
// amounts are a bug in the calling application.
func (p *Progresser) Advance(amount float64) {
	if amount < 0 {
		panic("emitter: progress advance amount cannot be negative")
	}

	p.e.mu.Lock()
	defer p.e.mu.Unlock()

	p.e.check()

	if p.delta {
		p.accumulated += amount
	} else {
		p.accumulated = amount
	}

	p.e.printer.ProgressBar(p.stream, p.text, p.accumulated, p.total, p.useTimestamp)
}

// Done shows (and logs) the end marker. Safe to call once; repeats are
// absorbed so deferred cleanup can overlap explicit completion.
func (p *Progresser) Done() {
	p.e.mu.Lock()
	defer p.e.mu.Unlock()

	if p.done || p.e.stopped {
		return
	}

	p.done = true

	pol := policies[p.e.mode].progress

	p.e.printer.Show(p.stream, p.text+" (<---)", printer.ShowOptions{
		Ephemeral:    pol.ephemeral,
		UseTimestamp: pol.timestamp,
	})
}
