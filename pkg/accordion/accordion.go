// Package accordion tracks which item of a collapsible list is expanded.
// At most one item is open at any time.
package accordion

// None means no item is open.
const None = -1

// Accordion is a single-open accordion controller.
type Accordion struct {
	count int
	open  int
}

// New creates an accordion over count items with defaultIndex open.
// Pass None to start collapsed.
func New(count, defaultIndex int) *Accordion {
	a := &Accordion{count: max(0, count), open: None}
	a.SetOpen(defaultIndex)
	return a
}

// Len returns the number of items.
func (a *Accordion) Len() int {
	return a.count
}

// Toggle closes item i if it is open, otherwise opens it and closes any
// other. Indexes outside the list are ignored.
func (a *Accordion) Toggle(i int) {
	if i < 0 || i >= a.count {
		return
	}
	if a.open == i {
		a.open = None
		return
	}
	a.open = i
}

// SetOpen opens item i directly. None, or any out-of-range index, closes all.
func (a *Accordion) SetOpen(i int) {
	if i < 0 || i >= a.count {
		a.open = None
		return
	}
	a.open = i
}

// CloseAll collapses every item.
func (a *Accordion) CloseAll() {
	a.open = None
}

// Open returns the open item index, if any.
func (a *Accordion) Open() (int, bool) {
	return a.open, a.open != None
}

// OpenIndex returns the open index or None.
func (a *Accordion) OpenIndex() int {
	return a.open
}

// IsOpen reports whether item i is expanded.
func (a *Accordion) IsOpen(i int) bool {
	return a.open != None && a.open == i
}
