package rsf

// Point is a single coordinate vector carrying a weight. Weight starts at 1
// for a freshly inserted point, grows when an identical coordinate is
// inserted again or when Sketch folds excess entries together, and shrinks
// by one per Remove.
type Point struct {
	Coords []float32
	Weight float64
}

// PointList is the leaf payload of a tree: an unordered bag of weighted
// points.
type PointList struct {
	points []Point
}

// NPoints returns the number of distinct coordinate vectors stored, which
// after a Sketch can be fewer than the total weight.
func (pl *PointList) NPoints() int { return len(pl.points) }

// Weight returns the sum of every point's weight.
func (pl *PointList) Weight() float64 {
	var w float64
	for _, p := range pl.points {
		w += p.Weight
	}
	return w
}

// Insert adds coords with weight 1, merging into an existing identical
// entry (by exact coordinate match) by incrementing its weight instead of
// appending a duplicate.
func (pl *PointList) Insert(coords []float32) {
	for i := range pl.points {
		if coordsEqual(pl.points[i].Coords, coords) {
			pl.points[i].Weight++
			return
		}
	}
	pl.points = append(pl.points, Point{Coords: append([]float32(nil), coords...), Weight: 1})
}

// Remove decrements the weight of the first entry matching coords exactly
// and drops it once its weight reaches zero. It is a no-op if coords isn't
// present.
func (pl *PointList) Remove(coords []float32) {
	for i := range pl.points {
		if coordsEqual(pl.points[i].Coords, coords) {
			pl.points[i].Weight--
			if pl.points[i].Weight <= 0 {
				pl.points[i] = pl.points[len(pl.points)-1]
				pl.points = pl.points[:len(pl.points)-1]
			}
			return
		}
	}
}

// SplitOff partitions the list by full containment in bb: points inside bb
// are removed from pl and returned in a new PointList; pl keeps the rest.
func (pl *PointList) SplitOff(bb BoundingBox) PointList {
	var in, out []Point
	for _, p := range pl.points {
		if bb.Contains(p.Coords) {
			in = append(in, p)
		} else {
			out = append(out, p)
		}
	}
	pl.points = out
	return PointList{points: in}
}

// PartitionAt splits points by containment in bb along dim only (used when
// descending a tree, where only the split dimension need be checked).
func (pl *PointList) PartitionAt(bb BoundingBox, dim int) PointList {
	var in, out []Point
	for _, p := range pl.points {
		if bb.ContainsAt(p.Coords, dim) {
			in = append(in, p)
		} else {
			out = append(out, p)
		}
	}
	pl.points = out
	return PointList{points: in}
}

// Sketch collapses the list down to at most sketchSize entries, folding
// weight from excess points into the retained ones (by index modulo
// sketchSize, discarding the excess points' own coordinates), then shrinks
// the backing slice.
func (pl *PointList) Sketch(sketchSize int) {
	if sketchSize <= 0 || len(pl.points) <= sketchSize {
		return
	}
	for j := sketchSize; j < len(pl.points); j++ {
		k := j % sketchSize
		pl.points[k].Weight += pl.points[j].Weight
	}
	pl.points = append([]Point(nil), pl.points[:sketchSize]...)
}

// Each calls fn for every point currently stored.
func (pl *PointList) Each(fn func(Point)) {
	for _, p := range pl.points {
		fn(p)
	}
}

// insertWeighted adds a point carrying an existing weight rather than
// resetting it to 1, used when folding a subtree's points back into a
// single leaf during Node.contract.
func (pl *PointList) insertWeighted(p Point) {
	for i := range pl.points {
		if coordsEqual(pl.points[i].Coords, p.Coords) {
			pl.points[i].Weight += p.Weight
			return
		}
	}
	pl.points = append(pl.points, Point{Coords: append([]float32(nil), p.Coords...), Weight: p.Weight})
}

func coordsEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
