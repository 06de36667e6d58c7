package rsf

// Normalize maps a point into the bounding box's own [0,1]-per-dimension
// coordinate space, in place. Trivial forwarding to BoundingBox.Normalize;
// kept as its own adaptor type only so it composes with the other
// streaming adaptors by the same Push(p) shape.
type Normalize struct {
	bb BoundingBox
}

// NewNormalize builds a normalizing adaptor against bb.
func NewNormalize(bb BoundingBox) *Normalize {
	return &Normalize{bb: bb}
}

// Push normalizes p in place and returns it.
func (n *Normalize) Push(p []float32) []float32 {
	n.bb.Normalize(p)
	return p
}
