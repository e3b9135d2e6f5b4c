package rtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tormol/geoindex/geo"
)

func collectIds(run func(sink func(int32) bool)) map[int32]int {
	var ids []int32
	run(func(id int32) bool { ids = append(ids, id); return true })
	return idSet(ids)
}

// S1 - single insert-delete.
func TestSeedSingleInsertDelete(t *testing.T) {
	tr := New(Config{})
	tr.Insert(geo.New(1, 1, 2, 2), 42)

	require.Equal(t, 1, tr.Size())
	bounds, ok := tr.Bounds()
	require.True(t, ok)
	assert.True(t, bounds.Equals(geo.New(1, 1, 2, 2)))

	got := collectIds(func(sink func(int32) bool) { tr.Intersects(geo.New(0, 0, 3, 3), sink) })
	assert.Equal(t, map[int32]int{42: 1}, got)

	got = collectIds(func(sink func(int32) bool) { tr.Intersects(geo.New(3, 3, 4, 4), sink) })
	assert.Empty(t, got)

	assert.True(t, tr.Delete(geo.New(1, 1, 2, 2), 42))
	assert.Equal(t, 0, tr.Size())
	_, ok = tr.Bounds()
	assert.False(t, ok)
}

// S2 - delete mismatch.
func TestSeedDeleteMismatch(t *testing.T) {
	tr := New(Config{})
	tr.Insert(geo.New(0, 0, 1, 1), 1)

	assert.False(t, tr.Delete(geo.New(0, 0, 1, 2), 1))
	assert.False(t, tr.Delete(geo.New(0, 0, 1, 1), 2))
	assert.True(t, tr.Delete(geo.New(0, 0, 1, 1), 1))
}

// S3 - contains vs intersects.
func TestSeedContainsVsIntersects(t *testing.T) {
	tr := New(Config{})
	tr.Insert(geo.New(0, 0, 10, 10), 1)
	tr.Insert(geo.New(2, 2, 5, 5), 2)
	tr.Insert(geo.New(9, 9, 11, 11), 3)

	got := collectIds(func(sink func(int32) bool) { tr.Contains(geo.New(1, 1, 6, 6), sink) })
	assert.Equal(t, map[int32]int{2: 1}, got)

	got = collectIds(func(sink func(int32) bool) { tr.Intersects(geo.New(1, 1, 6, 6), sink) })
	assert.Equal(t, map[int32]int{1: 1, 2: 1}, got)

	got = collectIds(func(sink func(int32) bool) { tr.Contains(geo.New(-1, -1, 12, 12), sink) })
	assert.Equal(t, map[int32]int{1: 1, 2: 1, 3: 1}, got)
}

// S4 - nearest ties.
func TestSeedNearestTies(t *testing.T) {
	tr := New(Config{})
	centers := []geo.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 0, Y: -2}}
	for i, c := range centers {
		r := geo.New(c.X-0.5, c.Y-0.5, c.X+0.5, c.Y+0.5)
		tr.Insert(r, int32(i+1))
	}

	got := collectIds(func(sink func(int32) bool) { tr.Nearest(geo.Point{X: 0, Y: 0}, sink, 1e18) })
	assert.Equal(t, map[int32]int{1: 1}, got)

	got = collectIds(func(sink func(int32) bool) { tr.Nearest(geo.Point{X: 1, Y: 1}, sink, 1e18) })
	assert.Equal(t, map[int32]int{2: 1, 3: 1}, got)
}

// S5 - k-NN with ties.
func TestSeedNearestNTies(t *testing.T) {
	tr := New(Config{})
	for id := int32(10); id <= 14; id++ {
		tr.Insert(geo.New(0, 0, 10, 10), id)
	}

	got := collectIds(func(sink func(int32) bool) { tr.NearestN(geo.Point{X: 5, Y: 5}, sink, 2, 1e18) })
	want := map[int32]int{10: 1, 11: 1, 12: 1, 13: 1, 14: 1}
	assert.Equal(t, want, got)

	got = collectIds(func(sink func(int32) bool) { tr.NearestNUnsorted(geo.Point{X: 5, Y: 5}, sink, 2, 1e18) })
	assert.Equal(t, want, got)
}

// S6 - stress/roundtrip.
func TestSeedStressRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(1234))
	tr := New(Config{MaxNodeEntries: 12, MinNodeEntries: 4})

	const n = 10000
	ids := make([]int32, n)
	rects := make([]geo.Rectangle, n)
	for i := 0; i < n; i++ {
		x, y := r.Float64()*10000, r.Float64()*10000
		rects[i] = geo.New(x, y, x+r.Float64()*5, y+r.Float64()*5)
		ids[i] = int32(i)
		tr.Insert(rects[i], ids[i])
	}
	require.Equal(t, n, tr.Size())

	bounds, ok := tr.Bounds()
	require.True(t, ok)
	got := collectIds(func(sink func(int32) bool) { tr.Intersects(bounds, sink) })
	require.Len(t, got, n)

	for i := n - 1; i >= 0; i-- {
		require.True(t, tr.Delete(rects[i], ids[i]))
		require.Equal(t, i, tr.Size())
		if i == 0 {
			_, ok := tr.Bounds()
			require.False(t, ok)
			continue
		}
		bounds, ok := tr.Bounds()
		require.True(t, ok)
		remaining := collectIds(func(sink func(int32) bool) { tr.Intersects(bounds, sink) })
		require.Len(t, remaining, i)
	}
}

func TestNearestNNonPositiveCountIsNoop(t *testing.T) {
	tr := New(Config{})
	tr.Insert(geo.New(0, 0, 1, 1), 1)
	got := collectIds(func(sink func(int32) bool) { tr.NearestN(geo.Point{}, sink, 0, 1e18) })
	assert.Empty(t, got)
}

func TestEmptyTreeQueries(t *testing.T) {
	tr := New(Config{})
	got := collectIds(func(sink func(int32) bool) { tr.Intersects(geo.New(0, 0, 1, 1), sink) })
	assert.Empty(t, got)
	got = collectIds(func(sink func(int32) bool) { tr.Nearest(geo.Point{}, sink, 1e18) })
	assert.Empty(t, got)
	_, ok := tr.Bounds()
	assert.False(t, ok)
}

func TestSinkEarlyStop(t *testing.T) {
	tr := New(Config{})
	for i := int32(0); i < 20; i++ {
		tr.Insert(geo.New(float64(i), float64(i), float64(i)+1, float64(i)+1), i)
	}
	count := 0
	tr.Intersects(geo.New(-1000, -1000, 1000, 1000), func(int32) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}
