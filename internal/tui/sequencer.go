package tui

import "github.com/rshade/pagedtable/internal/logging"

// Ticket stamps one outbound fetch.
type Ticket struct {
	Seq       uint64
	RequestID string
}

// Sequencer numbers fetches and decides which responses to apply.
//
// With strict ordering off, every response is applied as it arrives and the
// last one to arrive wins. With strict ordering on, a response is applied
// only if no newer fetch was issued after it, so a slow response can never
// overwrite a newer page.
type Sequencer struct {
	strict   bool
	issued   uint64
	answered uint64
}

// NewSequencer returns a Sequencer.
func NewSequencer(strict bool) *Sequencer {
	return &Sequencer{strict: strict}
}

// Issue stamps a new fetch.
func (s *Sequencer) Issue() Ticket {
	s.issued++
	return Ticket{Seq: s.issued, RequestID: logging.NewID()}
}

// Accept reports whether the response for t should be applied, and records
// it as answered when it is.
func (s *Sequencer) Accept(t Ticket) bool {
	if t.Seq == 0 || t.Seq > s.issued {
		return false
	}
	if s.strict && t.Seq < s.issued {
		return false
	}
	s.answered = max(s.answered, t.Seq)
	return true
}

// Loading reports whether the newest fetch is still outstanding.
func (s *Sequencer) Loading() bool {
	return s.answered < s.issued
}

// Issued returns the sequence number of the newest fetch.
func (s *Sequencer) Issued() uint64 {
	return s.issued
}
