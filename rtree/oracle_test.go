package rtree

import (
	"sort"

	"github.com/tormol/geoindex/geo"
)

// linearIndex is an independent reference implementation: a flat list
// of (rectangle, id) entries answered by full scan. It exists only to
// cross-check RTree in tests, per the test-oracle requirement; it is
// never used by production code.
type linearIndex struct {
	rects []geo.Rectangle
	ids   []int32
}

func (l *linearIndex) insert(r geo.Rectangle, id int32) {
	l.rects = append(l.rects, r)
	l.ids = append(l.ids, id)
}

func (l *linearIndex) delete(r geo.Rectangle, id int32) bool {
	for i, rr := range l.rects {
		if l.ids[i] == id && rr.Equals(r) {
			last := len(l.rects) - 1
			l.rects[i] = l.rects[last]
			l.ids[i] = l.ids[last]
			l.rects = l.rects[:last]
			l.ids = l.ids[:last]
			return true
		}
	}
	return false
}

func (l *linearIndex) size() int {
	return len(l.ids)
}

// rectOf returns the first live rectangle tagged with id, since a
// caller may have inserted the same id more than once.
func (l *linearIndex) rectOf(id int32) (geo.Rectangle, bool) {
	for i, existing := range l.ids {
		if existing == id {
			return l.rects[i], true
		}
	}
	return geo.Rectangle{}, false
}

func (l *linearIndex) intersects(q geo.Rectangle) []int32 {
	var out []int32
	for i, r := range l.rects {
		if geo.Intersects(r, q) {
			out = append(out, l.ids[i])
		}
	}
	return out
}

func (l *linearIndex) contains(q geo.Rectangle) []int32 {
	var out []int32
	for i, r := range l.rects {
		if geo.Contains(q, r) {
			out = append(out, l.ids[i])
		}
	}
	return out
}

func (l *linearIndex) bounds() (geo.Rectangle, bool) {
	if len(l.rects) == 0 {
		return geo.Rectangle{}, false
	}
	mbr := geo.Empty()
	for _, r := range l.rects {
		mbr.Add(r)
	}
	return mbr, true
}

// nearest returns every id tied for minimum distance to p within
// furthest (non-squared).
func (l *linearIndex) nearest(p geo.Point, furthest float64) []int32 {
	cutoffSq := furthest * furthest
	bestSq := cutoffSq
	var out []int32
	for i, r := range l.rects {
		d := geo.DistanceSq(r, p)
		switch {
		case d < bestSq:
			bestSq = d
			out = append(out[:0:0], l.ids[i])
		case d == bestSq:
			out = append(out, l.ids[i])
		}
	}
	return out
}

// nearestN returns the ids within furthest of p, sorted ascending by
// distance, including every id tied with the n-th distance.
func (l *linearIndex) nearestN(p geo.Point, n int, furthest float64) []int32 {
	if n <= 0 {
		return nil
	}
	cutoffSq := furthest * furthest
	type cand struct {
		id int32
		d  float64
	}
	var cands []cand
	for i, r := range l.rects {
		d := geo.DistanceSq(r, p)
		if d <= cutoffSq {
			cands = append(cands, cand{l.ids[i], d})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })
	if len(cands) <= n {
		out := make([]int32, len(cands))
		for i, c := range cands {
			out[i] = c.id
		}
		return out
	}
	threshold := cands[n-1].d
	var out []int32
	for _, c := range cands {
		if c.d <= threshold {
			out = append(out, c.id)
		}
	}
	return out
}

func idSet(ids []int32) map[int32]int {
	m := make(map[int32]int, len(ids))
	for _, id := range ids {
		m[id]++
	}
	return m
}
