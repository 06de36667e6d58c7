package rsf

// Shingle ring-buffers the last s vectors it has seen and, once s of them
// have arrived, emits their concatenation on every subsequent push (not
// just once every s inputs).
type Shingle struct {
	buf [][]float32
	s   int
}

// NewShingle creates a shingling adaptor of width s.
func NewShingle(s int) *Shingle {
	return &Shingle{s: s}
}

// Push feeds one vector through the shingle buffer. Returns (nil, false)
// until s vectors have been buffered; from then on every push returns the
// concatenation of the last s vectors seen, oldest first.
func (sh *Shingle) Push(p []float32) ([]float32, bool) {
	if len(sh.buf) < sh.s {
		sh.buf = append(sh.buf, p)
		if len(sh.buf) < sh.s {
			return nil, false
		}
	} else {
		sh.buf = append(sh.buf[1:], p)
	}
	out := make([]float32, 0, sh.s*len(p))
	for _, v := range sh.buf {
		out = append(out, v...)
	}
	return out, true
}
