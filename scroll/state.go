// Package scroll implements the scrolling engine shared by the list and
// tree components: offset state, follow policies, viewport virtualization
// over variable-height items, and scrollbar projection.
//
// The engine is deliberately single-threaded. State is owned by the
// component instance that embeds it, and mutations happen strictly between
// render passes; callers that drive a component from multiple goroutines
// must serialize access themselves.
package scroll

import "github.com/charmbracelet/x/exp/ordered"

// State holds the scroll position of a viewport over some content. The
// zero value is ready to use.
//
// The offset is always kept in [0, MaxOffset] by every mutator; it is
// never an error to ask for an out-of-range position.
type State struct {
	offset         int
	viewportHeight int
	contentHeight  int

	// scrolledAway is only meaningful under PolicySticky: it records that
	// the user scrolled off the bottom edge, pausing the follow behavior
	// until they return to the bottom (or explicitly reattach).
	scrolledAway bool
}

// Offset returns the current scroll offset in rows from the top.
func (s *State) Offset() int {
	return s.offset
}

// ViewportHeight returns the viewport height in rows.
func (s *State) ViewportHeight() int {
	return s.viewportHeight
}

// ContentHeight returns the total content height in rows.
func (s *State) ContentHeight() int {
	return s.contentHeight
}

// MaxOffset returns the largest valid scroll offset.
func (s *State) MaxOffset() int {
	return max(0, s.contentHeight-s.viewportHeight)
}

// AtBottom reports whether the viewport is scrolled to the very end of the
// content.
func (s *State) AtBottom() bool {
	return s.offset >= s.MaxOffset()
}

// ScrolledAway reports whether sticky following is currently paused
// because the user scrolled off the bottom.
func (s *State) ScrolledAway() bool {
	return s.scrolledAway
}

// Detach pauses sticky following. Called by components when a manual
// scroll moves the viewport off the bottom edge.
func (s *State) Detach() {
	s.scrolledAway = true
}

// Reattach resumes sticky following without touching the offset. The next
// Apply recomputes the true bottom, which is the correct behavior even if
// content grew between the event and the render.
func (s *State) Reattach() {
	s.scrolledAway = false
}

// SetViewportHeight sets the viewport height. Negative values are treated
// as zero.
func (s *State) SetViewportHeight(h int) {
	s.viewportHeight = max(0, h)
	s.clampOffset()
}

// SetContentHeight sets the total content height. Negative values are
// treated as zero.
func (s *State) SetContentHeight(h int) {
	s.contentHeight = max(0, h)
	s.clampOffset()
}

// ScrollBy scrolls by the given number of rows, clamping at both ends.
func (s *State) ScrollBy(delta int) {
	s.offset += delta
	s.clampOffset()
}

// SetOffset sets the scroll offset, clamping into the valid range.
func (s *State) SetOffset(v int) {
	s.offset = v
	s.clampOffset()
}

// ScrollToTop scrolls to the beginning of the content.
func (s *State) ScrollToTop() {
	s.offset = 0
}

// ScrollToEnd scrolls to the end of the content.
func (s *State) ScrollToEnd() {
	s.offset = s.MaxOffset()
}

// EnsureVisible adjusts the offset minimally so the row range
// [start, end) is inside the viewport. If the range starts above the
// viewport the view moves up to it; if it ends below, the view moves down
// just enough to contain it. Ranges taller than the viewport align their
// top edge.
func (s *State) EnsureVisible(start, end int) {
	if start < s.offset {
		s.offset = start
	} else if end > s.offset+s.viewportHeight {
		s.offset = end - s.viewportHeight
	}
	s.clampOffset()
}

// Apply resolves the effective offset for a render pass. It must run once
// per render, after content and viewport heights are known. selStart and
// selEnd give the selected item's row range and are only consulted by
// PolicyAutoScroll.
func (s *State) Apply(p Policy, selStart, selEnd int) {
	s.clampOffset()
	switch p {
	case PolicyAutoScroll:
		s.EnsureVisible(selStart, selEnd)
	case PolicyScrollToEnd:
		s.offset = s.MaxOffset()
	case PolicySticky:
		// Reaching the bottom by any means reattaches; the follow then
		// pins the offset every render, which also covers content growth.
		if m := s.MaxOffset(); m > 0 && s.offset >= m {
			s.scrolledAway = false
		}
		if !s.scrolledAway {
			s.offset = s.MaxOffset()
		}
	}
}

func (s *State) clampOffset() {
	s.offset = ordered.Clamp(s.offset, 0, s.MaxOffset())
}
