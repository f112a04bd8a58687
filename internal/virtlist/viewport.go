package virtlist

import "fmt"

// KeyFunc derives a stable identity for an item so the rendering layer can
// reuse elements across windows. Keys must be unique among simultaneously
// visible items; collisions show up as incorrect render reuse, not as a
// failure here.
type KeyFunc[T any] func(item T, index int) string

// Entry pairs a visible item with its index and its absolute position along
// the scroll axis.
type Entry[T any] struct {
	Item   T
	Index  int
	Offset int
	Key    string
}

// Viewport owns the scroll position for one scrollable list and turns it
// into the slice of positioned entries the rendering layer should draw. The
// item collection stays owned by the caller; the viewport only reads length
// and indexed access. A viewport is not safe for concurrent use: the scroll
// offset has a single writer by design.
type Viewport[T any] struct {
	items          []T
	key            KeyFunc[T]
	itemExtent     int
	viewportExtent int
	overscan       int
	scrollOffset   int
	win            Window
}

// New validates the layout parameters and returns a viewport positioned at
// offset 0. A non-positive item extent, negative viewport extent, or
// negative overscan is a caller bug that would corrupt layout far from its
// origin, so it is rejected here instead of being clamped.
func New[T any](items []T, key KeyFunc[T], itemExtent, viewportExtent, overscan int) (*Viewport[T], error) {
	if itemExtent <= 0 {
		return nil, fmt.Errorf("item extent must be positive, got %d", itemExtent)
	}
	if viewportExtent < 0 {
		return nil, fmt.Errorf("viewport extent cannot be negative, got %d", viewportExtent)
	}
	if overscan < 0 {
		return nil, fmt.Errorf("overscan cannot be negative, got %d", overscan)
	}

	v := &Viewport[T]{
		items:          items,
		key:            key,
		itemExtent:     itemExtent,
		viewportExtent: viewportExtent,
		overscan:       overscan,
	}
	v.recompute()

	return v, nil
}

// SetItems swaps the backing collection and recomputes the window for the
// current scroll position.
func (v *Viewport[T]) SetItems(items []T) {
	v.items = items
	v.recompute()
}

// Scroll is the sole mutation entry point for the scroll position. The
// offset is stored as reported by the host scroll container; offsets past
// the end of the content produce a valid clamped window rather than an
// error. It returns the visible slice for the new position.
func (v *Viewport[T]) Scroll(offset int) []Entry[T] {
	v.scrollOffset = offset
	v.recompute()
	return v.VisibleSlice()
}

// Resize updates the viewport extent, e.g. after a terminal resize.
func (v *Viewport[T]) Resize(viewportExtent int) error {
	if viewportExtent < 0 {
		return fmt.Errorf("viewport extent cannot be negative, got %d", viewportExtent)
	}
	v.viewportExtent = viewportExtent
	v.recompute()
	return nil
}

// VisibleSlice returns one entry per index in the current window, in
// ascending index order. The rendering layer draws exactly one element per
// entry, absolutely positioned at Entry.Offset inside a container sized to
// TotalExtent.
func (v *Viewport[T]) VisibleSlice() []Entry[T] {
	entries := make([]Entry[T], 0, v.win.Len())
	for i := v.win.Start; i < v.win.End; i++ {
		e := Entry[T]{
			Item:   v.items[i],
			Index:  i,
			Offset: i * v.itemExtent,
		}
		if v.key != nil {
			e.Key = v.key(v.items[i], i)
		} else {
			e.Key = fmt.Sprintf("%d", i)
		}
		entries = append(entries, e)
	}
	return entries
}

// Each invokes fn once per visible entry, in ascending index order. It is
// the callback form of VisibleSlice for render layers that draw in place.
func (v *Viewport[T]) Each(fn func(item T, index, offset int)) {
	for i := v.win.Start; i < v.win.End; i++ {
		fn(v.items[i], i, i*v.itemExtent)
	}
}

// Window returns the currently computed index window.
func (v *Viewport[T]) Window() Window {
	return v.win
}

// TotalExtent returns the scrollable size of the full collection, used to
// size the host scroll container so native scrolling matches the true
// collection length.
func (v *Viewport[T]) TotalExtent() int {
	return v.win.TotalExtent
}

// ScrollOffset returns the last offset passed to Scroll, or 0 for a fresh
// viewport.
func (v *Viewport[T]) ScrollOffset() int {
	return v.scrollOffset
}

// ItemExtent returns the uniform per-item extent.
func (v *Viewport[T]) ItemExtent() int {
	return v.itemExtent
}

// Len returns the length of the backing collection.
func (v *Viewport[T]) Len() int {
	return len(v.items)
}

func (v *Viewport[T]) recompute() {
	v.win = ComputeWindow(len(v.items), v.itemExtent, v.viewportExtent, v.scrollOffset, v.overscan)
}
