package layout

import (
	"math"
	"sort"
)

// Nearest returns the index of the item whose key is closest to x, or -1 for no
// items. Keys must be ascending. Ties go to the lower index.
func Nearest[T any](items []T, key func(T) float64, x float64) int {
	n := len(items)
	if n == 0 {
		return -1
	}
	// First index whose key is >= x, clamped to the last item.
	i := bisect(n-1, func(i int) bool { return key(items[i]) >= x })
	if i > 0 && x-key(items[i-1]) <= math.Abs(key(items[i])-x) {
		return i - 1
	}
	return i
}

// BisectRight returns the first index whose key is greater than x, or len(items).
// Keys must be ascending.
func BisectRight[T any](items []T, key func(T) float64, x float64) int {
	return bisect(len(items), func(i int) bool { return key(items[i]) > x })
}

func bisect(n int, above func(int) bool) int {
	return sort.Search(n, above)
}

// NearestFloat is Nearest over a plain ascending slice.
func NearestFloat(sorted []float64, x float64) int {
	return Nearest(sorted, func(v float64) float64 { return v }, x)
}

// ResolveHover maps a horizontal pointer offset to the index of the closest band
// centre.
func ResolveHover(band BandScale, pointerX float64) int {
	return NearestFloat(band.Centers(), pointerX)
}
