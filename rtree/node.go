package rtree

import "github.com/tormol/geoindex/geo"

// tombstoneID marks a slot freed by split/reorganize; such slots sort
// to the end of the array the next time reorganize() runs.
const tombstoneID int32 = -1

// node is a fixed-capacity bundle of entries plus its own MBR. Entries
// are stored as parallel arrays of coordinates and ids rather than a
// slice of structs, to keep splits and reorganisation allocation-free.
// Capacity is always maxNodeEntries+1: the extra slot is scratch space
// used while a split is in progress.
type node struct {
	nodeId     int32
	level      int32 // leaves are level 1, the root is at treeHeight
	entryCount int32
	mbr        geo.Rectangle

	entriesMinX []float64
	entriesMinY []float64
	entriesMaxX []float64
	entriesMaxY []float64
	ids         []int32
}

func newNode(id int32, level int32, capacity int32) *node {
	return &node{
		nodeId:      id,
		level:       level,
		mbr:         geo.Empty(),
		entriesMinX: make([]float64, capacity),
		entriesMinY: make([]float64, capacity),
		entriesMaxX: make([]float64, capacity),
		entriesMaxY: make([]float64, capacity),
		ids:         make([]int32, capacity),
	}
}

func (n *node) isLeaf() bool {
	return n.level == 1
}

// entryRect returns entry i's rectangle.
func (n *node) entryRect(i int32) geo.Rectangle {
	return geo.Rectangle{
		MinX: n.entriesMinX[i], MinY: n.entriesMinY[i],
		MaxX: n.entriesMaxX[i], MaxY: n.entriesMaxY[i],
	}
}

// addEntry appends an entry and folds it into the node's MBR. The
// caller must ensure entryCount has room (capacity is maxEntries+1,
// so a node may briefly hold one entry beyond the public limit while
// a split is being computed).
func (n *node) addEntry(r geo.Rectangle, id int32) {
	i := n.entryCount
	n.entriesMinX[i] = r.MinX
	n.entriesMinY[i] = r.MinY
	n.entriesMaxX[i] = r.MaxX
	n.entriesMaxY[i] = r.MaxY
	n.ids[i] = id
	n.entryCount++
	n.mbr.Add(r)
}

// findEntry returns the index of the entry matching both rectangle
// and id exactly, or -1.
func (n *node) findEntry(r geo.Rectangle, id int32) int32 {
	for i := int32(0); i < n.entryCount; i++ {
		if n.ids[i] == id &&
			n.entriesMinX[i] == r.MinX && n.entriesMinY[i] == r.MinY &&
			n.entriesMaxX[i] == r.MaxX && n.entriesMaxY[i] == r.MaxY {
			return i
		}
	}
	return -1
}

// deleteEntry removes entry i by swapping in the last live entry,
// then recomputes the MBR only if the removed rectangle touched it -
// a rectangle strictly interior to the MBR cannot change it.
func (n *node) deleteEntry(i int32) {
	r := n.entryRect(i)
	last := n.entryCount - 1
	if i != last {
		n.entriesMinX[i] = n.entriesMinX[last]
		n.entriesMinY[i] = n.entriesMinY[last]
		n.entriesMaxX[i] = n.entriesMaxX[last]
		n.entriesMaxY[i] = n.entriesMaxY[last]
		n.ids[i] = n.ids[last]
	}
	n.entryCount--
	touchedMBR := r.MinX == n.mbr.MinX || r.MinY == n.mbr.MinY ||
		r.MaxX == n.mbr.MaxX || r.MaxY == n.mbr.MaxY
	if touchedMBR {
		n.recalculateMBR()
	}
}

// recalculateMBR folds min/max over every live entry from scratch.
func (n *node) recalculateMBR() {
	mbr := geo.Empty()
	for i := int32(0); i < n.entryCount; i++ {
		mbr.Add(n.entryRect(i))
	}
	n.mbr = mbr
}

// reorganize compacts live entries to the front of the arrays,
// dropping slots tombstoned with id == tombstoneID. Used after a
// split has marked the entries assigned to the sibling.
func (n *node) reorganize() {
	write := int32(0)
	total := int32(len(n.ids))
	for read := int32(0); read < total; read++ {
		if n.ids[read] == tombstoneID {
			continue
		}
		if write != read {
			n.entriesMinX[write] = n.entriesMinX[read]
			n.entriesMinY[write] = n.entriesMinY[read]
			n.entriesMaxX[write] = n.entriesMaxX[read]
			n.entriesMaxY[write] = n.entriesMaxY[read]
			n.ids[write] = n.ids[read]
		}
		write++
	}
	n.entryCount = write
}
