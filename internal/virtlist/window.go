// Package virtlist implements fixed-extent list virtualization: given a
// scroll position it computes the contiguous window of items that has to be
// materialized, so rendering cost stays bounded no matter how long the
// underlying collection grows.
package virtlist

// Window is the contiguous index range [Start, End) that must be rendered
// for a given scroll position, together with the total scrollable extent
// implied by the whole collection.
type Window struct {
	Start       int
	End         int
	TotalExtent int
}

// Len returns the number of indexes covered by the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether index falls inside the window.
func (w Window) Contains(index int) bool {
	return index >= w.Start && index < w.End
}

// ComputeWindow derives the render window for a collection of n items of
// uniform extent. Overscan widens the window by that many items on each
// side. The function sits on the hot path of every scroll event, so
// degenerate inputs are clamped instead of rejected: negative offsets are
// treated as 0, a non-positive item extent as 1, and the resulting range is
// always contiguous and within [0, n]. Calling it twice with the same
// arguments yields the same window.
func ComputeWindow(n, itemExtent, viewportExtent, scrollOffset, overscan int) Window {
	if n < 0 {
		n = 0
	}
	if itemExtent <= 0 {
		itemExtent = 1
	}
	if viewportExtent < 0 {
		viewportExtent = 0
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	start := scrollOffset/itemExtent - overscan
	end := ceilDiv(scrollOffset+viewportExtent, itemExtent) + overscan

	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}

	return Window{
		Start:       start,
		End:         end,
		TotalExtent: n * itemExtent,
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
