package rsf

// WindowUpdate is emitted by Window for every item it consumes: either a
// plain Insert (the window isn't full yet) or a Replace naming the item
// that fell out the back as the new one came in. NewIndex and EvictedIndex
// are each item's own arrival index (the count of items pushed before it),
// not the current step's counter — an evicted item keeps the index it was
// inserted under, so an insert-time and evict-time decision about the same
// item agree.
type WindowUpdate struct {
	Insert       []float32
	NewIndex     int
	Evicted      []float32
	EvictedIndex int
	IsFull       bool // true once this update is a Replace rather than a bare Insert
}

// windowItem pairs a buffered item with the arrival index it was pushed
// under, so eviction reports the item's own index rather than the step
// count at eviction time.
type windowItem struct {
	index int
	item  []float32
}

// Window buffers the last w items seen and reports, for every new item, what
// changed: an Insert while filling, then a Replace(old, new) once full.
type Window struct {
	buf  []windowItem
	w    int
	next int
}

// NewWindow creates a window of size w.
func NewWindow(w int) *Window {
	return &Window{w: w}
}

// Push feeds one item through the window and returns the resulting update.
func (win *Window) Push(item []float32) WindowUpdate {
	index := win.next
	win.next++
	if len(win.buf) < win.w {
		win.buf = append(win.buf, windowItem{index: index, item: item})
		return WindowUpdate{Insert: item, NewIndex: index}
	}
	old := win.buf[0]
	win.buf = append(win.buf[1:], windowItem{index: index, item: item})
	return WindowUpdate{
		Insert:       item,
		NewIndex:     index,
		Evicted:      old.item,
		EvictedIndex: old.index,
		IsFull:       true,
	}
}
