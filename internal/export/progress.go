package export

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks an export. It is safe for concurrent use.
type Progress struct {
	totalPages int
	pages      int
	rows       int
	start      time.Time
	last       time.Time

	mu sync.RWMutex
}

// NewProgress creates a tracker for totalPages pages.
func NewProgress(totalPages int) *Progress {
	now := time.Now()
	return &Progress{totalPages: totalPages, start: now, last: now}
}

// AddPage records one loaded page holding rows rows.
func (p *Progress) AddPage(rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pages++
	p.rows += rows
	p.last = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentUnsafe()
}

// EstimatedTimeRemaining extrapolates from the average time per page.
// It returns 0 before the first page completes.
func (p *Progress) EstimatedTimeRemaining() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.remainingUnsafe()
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Snapshot{
		TotalPages:      p.totalPages,
		Pages:           p.pages,
		Rows:            p.rows,
		PercentComplete: p.percentUnsafe(),
		Elapsed:         p.last.Sub(p.start),
		Remaining:       p.remainingUnsafe(),
	}
}

func (p *Progress) remainingUnsafe() time.Duration {
	if p.pages == 0 {
		return 0
	}
	perPage := p.last.Sub(p.start) / time.Duration(p.pages)
	return perPage * time.Duration(max(p.totalPages-p.pages, 0))
}

// percentUnsafe must be called with the lock held.
func (p *Progress) percentUnsafe() float64 {
	if p.totalPages == 0 {
		return percentMultiplier
	}
	return float64(p.pages) / float64(p.totalPages) * percentMultiplier
}

// Snapshot is an immutable view of a Progress.
type Snapshot struct {
	TotalPages      int
	Pages           int
	Rows            int
	PercentComplete float64
	Elapsed         time.Duration
	Remaining       time.Duration
}
