// Package pager splits an ordered list into fixed-size pages whose size
// follows the viewport tier. Navigation clamps at both ends and never wraps;
// the grid always has exactly PageSize slots, padding the last page with
// empty placeholders so its shape does not change between pages.
package pager

import "github.com/vanderheijden86/mahar/pkg/breakpoint"

// Sizes maps viewport tiers to page sizes.
type Sizes struct {
	Narrow int
	Wide   int
}

// DefaultSizes shows one item per page on narrow viewports and three
// otherwise.
var DefaultSizes = Sizes{Narrow: 1, Wide: 3}

// Slot is one grid cell. Empty slots are placeholders past the end of the
// list.
type Slot[T any] struct {
	Item  T
	Index int
	Empty bool
}

// Group is the paged group controller.
type Group[T any] struct {
	items    []T
	pageSize int
	page     int
	sub      breakpoint.Subscription
}

// New creates a group over items at the given page size. A page size below
// one is treated as one.
func New[T any](items []T, pageSize int) *Group[T] {
	return &Group[T]{
		items:    items,
		pageSize: max(1, pageSize),
	}
}

// Follow subscribes the group to the viewport tier, applying the current
// tier immediately. Any previous subscription is released first.
func (g *Group[T]) Follow(signal breakpoint.Signal, sizes Sizes) {
	g.Close()
	apply := func(narrow bool) {
		if narrow {
			g.ChangePageSize(sizes.Narrow)
		} else {
			g.ChangePageSize(sizes.Wide)
		}
	}
	apply(signal.Narrow())
	g.sub = signal.Subscribe(apply)
}

// Close releases the viewport subscription.
func (g *Group[T]) Close() {
	if g.sub != nil {
		g.sub.Unsubscribe()
		g.sub = nil
	}
}

// Len returns the number of items.
func (g *Group[T]) Len() int {
	return len(g.items)
}

// PageSize returns the current page size.
func (g *Group[T]) PageSize() int {
	return g.pageSize
}

// PageIndex returns the zero-based current page.
func (g *Group[T]) PageIndex() int {
	return g.page
}

// MaxPageIndex returns the last valid zero-based page index.
func (g *Group[T]) MaxPageIndex() int {
	return max(0, ceilDiv(len(g.items), g.pageSize)-1)
}

// ChangePageSize sets a new page size and clamps the current page into range.
func (g *Group[T]) ChangePageSize(size int) {
	g.pageSize = max(1, size)
	g.page = min(g.page, g.MaxPageIndex())
}

// NextPage moves forward one page, stopping at the last.
func (g *Group[T]) NextPage() {
	g.page = min(g.page+1, g.MaxPageIndex())
}

// PreviousPage moves back one page, stopping at the first.
func (g *Group[T]) PreviousPage() {
	g.page = max(g.page-1, 0)
}

// CanNext reports whether NextPage would move.
func (g *Group[T]) CanNext() bool {
	return g.page < g.MaxPageIndex()
}

// CanPrevious reports whether PreviousPage would move.
func (g *Group[T]) CanPrevious() bool {
	return g.page > 0
}

// Slots returns exactly PageSize slots for the current page.
func (g *Group[T]) Slots() []Slot[T] {
	slots := make([]Slot[T], g.pageSize)
	base := g.page * g.pageSize
	for s := range slots {
		idx := base + s
		if idx < len(g.items) {
			slots[s] = Slot[T]{Item: g.items[idx], Index: idx}
		} else {
			slots[s] = Slot[T]{Index: idx, Empty: true}
		}
	}
	return slots
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
