package rtree

import (
	"math"

	"github.com/tormol/geoindex/geo"
)

// split partitions a full node's maxNodeEntries+1 entries into two
// groups (Guttman's quadratic algorithm), leaving the surviving
// entries compacted in n and returning the id of a freshly allocated
// sibling at the same level holding the rest.
func (t *RTree) split(n *node) int32 {
	total := n.entryCount
	seedA, seedB := n.pickSeeds()

	status := t.entryStatus[:total]
	for i := range status {
		status[i] = statusUnassigned
	}
	status[seedA] = statusGroup1
	status[seedB] = statusGroup2

	group1MBR, group2MBR := n.entryRect(seedA), n.entryRect(seedB)
	group1Count, group2Count := int32(1), int32(1)
	remaining := total - 2

	for remaining > 0 {
		if t.minNodeEntries-group1Count >= remaining {
			assignAll(status, statusGroup1)
			group1Count += remaining
			break
		}
		if t.minNodeEntries-group2Count >= remaining {
			assignAll(status, statusGroup2)
			group2Count += remaining
			break
		}

		bestIdx := int32(-1)
		bestDiff := -1.0
		var bestE1, bestE2 float64
		for i := int32(0); i < total; i++ {
			if status[i] != statusUnassigned {
				continue
			}
			r := n.entryRect(i)
			e1 := geo.Enlargement(group1MBR, r)
			e2 := geo.Enlargement(group2MBR, r)
			diff := math.Abs(e1 - e2)
			if diff > bestDiff {
				bestDiff, bestIdx, bestE1, bestE2 = diff, i, e1, e2
			}
		}

		r := n.entryRect(bestIdx)
		group1 := chooseGroup(bestE1, bestE2, group1MBR, group2MBR, r, group1Count, group2Count)
		if group1 {
			status[bestIdx] = statusGroup1
			group1MBR = geo.Union(group1MBR, r)
			group1Count++
		} else {
			status[bestIdx] = statusGroup2
			group2MBR = geo.Union(group2MBR, r)
			group2Count++
		}
		remaining--
	}

	sibling := t.allocNode(n.level)
	for i := int32(0); i < total; i++ {
		if status[i] == statusGroup2 {
			sibling.addEntry(n.entryRect(i), n.ids[i])
			n.ids[i] = tombstoneID
		}
	}
	n.reorganize()
	n.recalculateMBR()
	return sibling.nodeId
}

func assignAll(status []byte, to byte) {
	for i, s := range status {
		if s == statusUnassigned {
			status[i] = to
		}
	}
}

// chooseGroup decides which group a candidate with enlargement costs
// (e1, e2) should join: the one enlarging less, with cascading
// tie-breaks on smaller resulting area, then fewer current entries,
// then group1.
func chooseGroup(e1, e2 float64, group1MBR, group2MBR, candidate geo.Rectangle, count1, count2 int32) bool {
	if e1 != e2 {
		return e1 < e2
	}
	a1 := geo.Union(group1MBR, candidate).Area()
	a2 := geo.Union(group2MBR, candidate).Area()
	if a1 != a2 {
		return a1 < a2
	}
	if count1 != count2 {
		return count1 < count2
	}
	return true
}

// pickSeeds implements Guttman's quadratic seed selection: per axis,
// find the entry with the greatest min and the entry with the
// smallest max, and take the pair with the largest normalised
// separation. If both axes degenerate (every entry overlaps every
// other on both axes), fall back to a deterministic pair: smallest
// minY, and among the rest the largest maxX.
func (n *node) pickSeeds() (int32, int32) {
	total := n.entryCount

	xA, xB, xSep, xOk := axisSeeds(total,
		func(i int32) float64 { return n.entriesMinX[i] },
		func(i int32) float64 { return n.entriesMaxX[i] },
		n.mbr.MaxX-n.mbr.MinX)
	yA, yB, ySep, yOk := axisSeeds(total,
		func(i int32) float64 { return n.entriesMinY[i] },
		func(i int32) float64 { return n.entriesMaxY[i] },
		n.mbr.MaxY-n.mbr.MinY)

	switch {
	case xOk && (!yOk || xSep >= ySep):
		return xA, xB
	case yOk:
		return yA, yB
	}

	smallestMinY := int32(0)
	for i := int32(1); i < total; i++ {
		if n.entriesMinY[i] < n.entriesMinY[smallestMinY] {
			smallestMinY = i
		}
	}
	largestMaxX := int32(-1)
	for i := int32(0); i < total; i++ {
		if i == smallestMinY {
			continue
		}
		if largestMaxX == -1 || n.entriesMaxX[i] > n.entriesMaxX[largestMaxX] {
			largestMaxX = i
		}
	}
	return smallestMinY, largestMaxX
}

func axisSeeds(total int32, min, max func(int32) float64, width float64) (a, b int32, sep float64, ok bool) {
	highestLowIdx, lowestHighIdx := int32(0), int32(0)
	highestLow, lowestHigh := min(0), max(0)
	for i := int32(1); i < total; i++ {
		if min(i) > highestLow {
			highestLow, highestLowIdx = min(i), i
		}
		if max(i) < lowestHigh {
			lowestHigh, lowestHighIdx = max(i), i
		}
	}
	if highestLowIdx == lowestHighIdx {
		return 0, 0, 0, false
	}
	if width == 0 {
		return highestLowIdx, lowestHighIdx, 0, true
	}
	return highestLowIdx, lowestHighIdx, (highestLow - lowestHigh) / width, true
}
