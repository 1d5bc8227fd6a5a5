package table

// Resizer tracks one pointer-drag column resize.
//
// Begin captures the starting width and pointer position, Move computes
// start + (pointer - startPointer) clamped to the minimum width, End finishes
// the drag. Only the current width is kept.
type Resizer struct {
	minWidth int

	active     bool
	column     string
	startWidth int
	startX     int
	width      int
}

// NewResizer creates a resizer with the given minimum width (at least 1).
func NewResizer(minWidth int) *Resizer {
	return &Resizer{minWidth: max(minWidth, 1)}
}

// Begin starts dragging col from pointer position x.
func (r *Resizer) Begin(col string, startWidth, x int) {
	r.active = true
	r.column = col
	r.startWidth = startWidth
	r.startX = x
	r.width = max(startWidth, r.minWidth)
}

// Move returns the new width for pointer position x. ok is false when no drag
// is in progress.
func (r *Resizer) Move(x int) (width int, ok bool) { //nolint:nonamedreturns // Documents the pair.
	if !r.active {
		return 0, false
	}
	r.width = r.Clamp(r.startWidth + (x - r.startX))
	return r.width, true
}

// End finishes the drag and returns the column and its final width.
func (r *Resizer) End() (col string, width int, ok bool) { //nolint:nonamedreturns // Documents the triple.
	if !r.active {
		return "", 0, false
	}
	col, width = r.column, r.width
	r.active = false
	r.column = ""
	return col, width, true
}

// Active reports whether a drag is in progress.
func (r *Resizer) Active() bool {
	return r.active
}

// Column returns the column being dragged, or "" when idle.
func (r *Resizer) Column() string {
	return r.column
}

// Clamp applies the minimum width.
func (r *Resizer) Clamp(width int) int {
	return max(width, r.minWidth)
}

// MinWidth returns the minimum width.
func (r *Resizer) MinWidth() int {
	return r.minWidth
}
