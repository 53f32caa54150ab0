// Package navigation tracks section offsets, the active section, and the
// collapsible menu of the page.
package navigation

const (
	// ScrolledThreshold is the offset after which the nav bar is "scrolled".
	ScrolledThreshold = 2
	// SpyMargin is how far ahead of a section start it already counts as active.
	SpyMargin = 3
	// CompactWidth is the width below which the menu collapses.
	CompactWidth = 80
)

// Section is an anchor-addressable region of the page.
type Section struct {
	ID     string
	Title  string
	Offset int
}

// Navigator holds the page sections and the menu state.
type Navigator struct {
	sections []Section
	offset   int
	menuOpen bool
}

// New returns a navigator over sections in page order.
func New(sections []Section) *Navigator {
	return &Navigator{sections: append([]Section(nil), sections...)}
}

// Sections returns the sections in page order.
func (n *Navigator) Sections() []Section {
	return n.sections
}

// SetOffsets updates section offsets after a re-layout. Unknown ids are ignored.
func (n *Navigator) SetOffsets(offsets map[string]int) {
	for i := range n.sections {
		if off, ok := offsets[n.sections[i].ID]; ok {
			n.sections[i].Offset = off
		}
	}
}

// Scroll records the current scroll offset.
func (n *Navigator) Scroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	n.offset = offset
}

// Offset returns the last recorded scroll offset.
func (n *Navigator) Offset() int {
	return n.offset
}

// Scrolled reports whether the page is past the sticky threshold.
func (n *Navigator) Scrolled() bool {
	return n.offset > ScrolledThreshold
}

// Active returns the index of the section the scroll offset is in, or -1
// when there are no sections.
func (n *Navigator) Active() int {
	return ActiveIndex(n.sections, n.offset)
}

// ActiveIndex returns the last section whose offset minus SpyMargin is at or
// above scroll. Before the first section it returns 0.
func ActiveIndex(sections []Section, scroll int) int {
	if len(sections) == 0 {
		return -1
	}
	active := 0
	for i, s := range sections {
		if scroll >= s.Offset-SpyMargin {
			active = i
		}
	}
	return active
}

// Jump returns the offset of the section with id and closes the menu.
func (n *Navigator) Jump(id string) (int, bool) {
	for _, s := range n.sections {
		if s.ID == id {
			n.menuOpen = false
			n.Scroll(s.Offset)
			return s.Offset, true
		}
	}
	return 0, false
}

// JumpIndex is Jump by position.
func (n *Navigator) JumpIndex(i int) (int, bool) {
	if i < 0 || i >= len(n.sections) {
		return 0, false
	}
	return n.Jump(n.sections[i].ID)
}

// Step moves to the next (delta > 0) or previous section relative to the active one.
func (n *Navigator) Step(delta int) (int, bool) {
	if len(n.sections) == 0 {
		return 0, false
	}
	next := n.Active() + delta
	if next < 0 {
		next = 0
	}
	if next >= len(n.sections) {
		next = len(n.sections) - 1
	}
	return n.JumpIndex(next)
}

// Compact reports whether width calls for the collapsed menu.
func Compact(width int) bool {
	return width > 0 && width < CompactWidth
}

// ToggleMenu opens or closes the collapsed menu.
func (n *Navigator) ToggleMenu() bool {
	n.menuOpen = !n.menuOpen
	return n.menuOpen
}

// CloseMenu closes the collapsed menu.
func (n *Navigator) CloseMenu() {
	n.menuOpen = false
}

// MenuOpen reports whether the collapsed menu is open.
func (n *Navigator) MenuOpen() bool {
	return n.menuOpen
}
