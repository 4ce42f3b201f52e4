package dnd

import "math"

// Target is a drop target as reported by the current layout.
type Target struct {
	ID     string
	Rect   Rect
	Filled bool
}

// TargetSource is anything that can enumerate the drop targets of the
// current screen (the rendered board layout).
type TargetSource interface {
	DropTargets() []Target
}

// Index caches the geometry of the eligible drop zones.
//
// Filled and zero-sized targets are not eligible. Hit testing is a linear
// scan; boards hold a few dozen zones at most.
type Index struct {
	zones []Target
}

func NewIndex(src TargetSource) *Index {
	ix := &Index{}
	ix.Rebuild(src)
	return ix
}

// Rebuild replaces the cached zones with the eligible targets of src.
// A nil source empties the index.
func (ix *Index) Rebuild(src TargetSource) {
	ix.zones = ix.zones[:0]
	if src == nil {
		return
	}
	for _, t := range src.DropTargets() {
		if t.Filled || t.Rect.Empty() || t.ID == "" {
			continue
		}
		ix.zones = append(ix.zones, t)
	}
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.zones)
}

// Zones returns a copy of the cached zones in index order.
func (ix *Index) Zones() []Target {
	if ix == nil {
		return nil
	}
	out := make([]Target, len(ix.zones))
	copy(out, ix.zones)
	return out
}

// HitTest returns the zone containing p whose center is nearest to p.
// On an exact distance tie the zone earlier in index order wins.
func (ix *Index) HitTest(p Point) (Target, bool) {
	if ix == nil {
		return Target{}, false
	}
	best := -1
	bestDist := math.Inf(1)
	for i, z := range ix.zones {
		if !z.Rect.Contains(p) {
			continue
		}
		if d := distance(p, z.Rect); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return Target{}, false
	}
	return ix.zones[best], true
}

// TargetList adapts a plain slice to TargetSource.
type TargetList []Target

func (l TargetList) DropTargets() []Target { return l }
