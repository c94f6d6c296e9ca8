package list

import (
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/sahilm/fuzzy"

	"github.com/charmbracelet/vlist/scroll"
)

// List is a virtualized vertical list with a single selection. Scroll and
// selection state live on the instance; multiple lists never share state.
//
// Rendering is idempotent from state: every Draw re-measures item heights
// at the current width, re-resolves the scroll offset from the active
// policy, and composites only the items intersecting the viewport.
type List struct {
	width, height int

	// allItems is the full item set; items is the active view, which
	// differs from allItems only while a filter query is set.
	allItems []Item
	items    []Item
	filter   string

	selectedIdx int
	focused     bool

	policy scroll.Policy
	scroll scroll.State

	barPolicy scroll.BarPolicy
	bar       scroll.Bar

	highlightPrefix   string
	highlightStyle    *lipgloss.Style
	resolvedHighlight *lipgloss.Style

	keyMap KeyMap

	// heights is scratch space rebuilt on every Draw.
	heights []int
}

var defaultHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

// New creates a list with the given items.
func New(items ...Item) *List {
	return &List{
		allItems:  items,
		items:     items,
		barPolicy: scroll.BarNever,
		keyMap:    DefaultKeyMap(),
	}
}

// SetSize sets the viewport dimensions used for navigation math before
// the first Draw. Draw overrides both from the area it receives.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.scroll.SetViewportHeight(height)
}

// Width returns the last known viewport width.
func (l *List) Width() int { return l.width }

// Height returns the last known viewport height.
func (l *List) Height() int { return l.height }

// Len returns the number of items in the active view.
func (l *List) Len() int { return len(l.items) }

// Items returns the active view's items.
func (l *List) Items() []Item { return l.items }

// Offset returns the current scroll offset.
func (l *List) Offset() int { return l.scroll.Offset() }

// ScrolledAway reports whether sticky following is paused.
func (l *List) ScrolledAway() bool { return l.scroll.ScrolledAway() }

// Policy returns the active scroll policy.
func (l *List) Policy() scroll.Policy { return l.policy }

// SetScrollPolicy selects the scroll policy. Enabling a follow policy
// while a different one is active returns a *scroll.ConfigError;
// re-enabling the current policy or selecting PolicyNone never fails.
func (l *List) SetScrollPolicy(p scroll.Policy) error {
	if err := scroll.CheckPolicy(l.policy, p); err != nil {
		return err
	}
	l.policy = p
	return nil
}

// SetScrollbarPolicy controls when the scrollbar column is shown.
func (l *List) SetScrollbarPolicy(p scroll.BarPolicy) {
	l.barPolicy = p
}

// SetScrollbarStyles sets explicit scrollbar styles; nil values fall back
// to resolved, then built-in styles.
func (l *List) SetScrollbarStyles(thumb, track *lipgloss.Style) {
	l.bar.SetStyles(thumb, track)
}

// SetResolvedScrollbarStyles installs externally resolved scrollbar
// styles, consulted when no explicit style is set.
func (l *List) SetResolvedScrollbarStyles(thumb, track *lipgloss.Style) {
	l.bar.SetResolvedStyles(thumb, track)
}

// SetHighlight configures the selection marker drawn beside the selected
// item. An empty prefix disables the marker column entirely.
func (l *List) SetHighlight(prefix string, style *lipgloss.Style) {
	l.highlightPrefix = prefix
	l.highlightStyle = style
}

// SetResolvedHighlightStyle installs an externally resolved highlight
// style, consulted when no explicit style is set.
func (l *List) SetResolvedHighlightStyle(style *lipgloss.Style) {
	l.resolvedHighlight = style
}

func (l *List) effectiveHighlight() lipgloss.Style {
	if l.highlightStyle != nil {
		return *l.highlightStyle
	}
	if l.resolvedHighlight != nil {
		return *l.resolvedHighlight
	}
	return defaultHighlightStyle
}

// Focus marks the list focused; the selected item gains item focus on the
// next Draw.
func (l *List) Focus() { l.focused = true }

// Blur removes focus from the list and its items.
func (l *List) Blur() { l.focused = false }

// Focused reports whether the list is focused.
func (l *List) Focused() bool { return l.focused }

// Item mutation.

// SetItems replaces the item set. Selection is clamped and the filter
// re-applied.
func (l *List) SetItems(items ...Item) {
	l.allItems = items
	l.applyFilter()
}

// AppendItems adds items to the end of the list.
func (l *List) AppendItems(items ...Item) {
	l.allItems = append(l.allItems, items...)
	l.applyFilter()
}

// PrependItems adds items to the front, shifting the selection so it
// stays on the same item.
func (l *List) PrependItems(items ...Item) {
	l.allItems = append(items, l.allItems...)
	if l.filter == "" {
		l.items = l.allItems
		l.selectedIdx += len(items)
		l.clampSelection()
		return
	}
	l.applyFilter()
}

// RemoveItem removes the item at the given index of the active view.
func (l *List) RemoveItem(idx int) {
	if idx < 0 || idx >= len(l.items) {
		return
	}
	target := l.items[idx]
	for i, it := range l.allItems {
		if it == target {
			l.allItems = append(l.allItems[:i], l.allItems[i+1:]...)
			break
		}
	}
	// Shift the selection before applyFilter clamps it: clamping first
	// would absorb the removal for a last-index selection and the shift
	// would then move it off its item.
	if l.selectedIdx > idx {
		l.selectedIdx--
	}
	l.applyFilter()
}

// Filtering.

// SetFilter fuzzy-filters the list by the given query. Items implementing
// Filterable are matched against their filter value; the rest are hidden
// while a query is active. An empty query restores the full set.
func (l *List) SetFilter(query string) {
	l.filter = query
	l.applyFilter()
	l.selectedIdx = 0
	l.scroll.ScrollToTop()
}

// Filter returns the active filter query.
func (l *List) Filter() string { return l.filter }

type filterSource []Item

func (s filterSource) Len() int { return len(s) }

func (s filterSource) String(i int) string {
	if f, ok := s[i].(Filterable); ok {
		return f.FilterValue()
	}
	return ""
}

func (l *List) applyFilter() {
	if l.filter == "" {
		l.items = l.allItems
		l.clampSelection()
		return
	}
	matches := fuzzy.FindFrom(l.filter, filterSource(l.allItems))
	filtered := make([]Item, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, l.allItems[m.Index])
	}
	l.items = filtered
	l.clampSelection()
}

// Selection. The selected index is always clamped into the active view;
// out-of-range requests are defined behavior, not errors.

// SelectedIndex returns the selected index, always within [0, Len()) for
// a non-empty view and 0 otherwise.
func (l *List) SelectedIndex() int { return l.selectedIdx }

// SelectedItem returns the selected item, or nil for an empty view.
func (l *List) SelectedItem() Item {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[l.selectedIdx]
}

// SetSelected selects the item at idx, clamping into the valid range.
func (l *List) SetSelected(idx int) {
	l.selectedIdx = idx
	l.clampSelection()
}

// SelectPrev moves the selection up one item.
func (l *List) SelectPrev() { l.SetSelected(l.selectedIdx - 1) }

// SelectNext moves the selection down one item.
func (l *List) SelectNext() { l.SetSelected(l.selectedIdx + 1) }

// SelectFirst selects the first item.
func (l *List) SelectFirst() { l.SetSelected(0) }

// SelectLast selects the last item.
func (l *List) SelectLast() { l.SetSelected(len(l.items) - 1) }

// PageUp moves the selection up by one page less a row of overlap.
func (l *List) PageUp() { l.SetSelected(l.selectedIdx - l.pageStep()) }

// PageDown moves the selection down by one page less a row of overlap.
func (l *List) PageDown() { l.SetSelected(l.selectedIdx + l.pageStep()) }

func (l *List) pageStep() int {
	return max(1, l.scroll.ViewportHeight()-1)
}

func (l *List) clampSelection() {
	if len(l.items) == 0 {
		l.selectedIdx = 0
		return
	}
	l.selectedIdx = ordered.Clamp(l.selectedIdx, 0, len(l.items)-1)
}

// Scrolling. Under PolicySticky, manual scroll operations pause the
// follow behavior; ScrollToEnd resumes it.

// ScrollBy scrolls by delta rows.
func (l *List) ScrollBy(delta int) {
	l.scroll.ScrollBy(delta)
	if l.policy == scroll.PolicySticky {
		l.scroll.Detach()
	}
}

// SetScrollOffset sets the scroll offset directly.
func (l *List) SetScrollOffset(v int) {
	l.scroll.SetOffset(v)
	if l.policy == scroll.PolicySticky {
		l.scroll.Detach()
	}
}

// ScrollToTop scrolls to the first row.
func (l *List) ScrollToTop() {
	l.scroll.ScrollToTop()
	if l.policy == scroll.PolicySticky {
		l.scroll.Detach()
	}
}

// ScrollToEnd scrolls to the last row and, under PolicySticky, resumes
// following.
func (l *List) ScrollToEnd() {
	l.scroll.ScrollToEnd()
	l.scroll.Reattach()
}

// Mouse interaction.

// HandleMouseDown selects the item under the given viewport-relative
// coordinates. It reports whether an item was hit.
func (l *List) HandleMouseDown(x, y int) bool {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return false
	}
	idx := l.itemAtRow(l.scroll.Offset() + y)
	if idx < 0 {
		return false
	}
	l.SetSelected(idx)
	return true
}

// HandleWheel scrolls by delta rows in response to a mouse wheel event.
func (l *List) HandleWheel(delta int) {
	l.ScrollBy(delta)
}

// itemAtRow maps a content-space row to an item index using the heights
// measured on the last Draw. Returns -1 for rows past the content.
func (l *List) itemAtRow(row int) int {
	if row < 0 {
		return -1
	}
	pos := 0
	for i, h := range l.heights {
		if row < pos+h {
			return i
		}
		pos += h
	}
	return -1
}

// Rendering.

// Draw renders the list into area. It is the single render entry point:
// it measures heights, resolves the scroll policy, composites the visible
// items, and draws the scrollbar, leaving the scroll state ready for the
// next frame's events.
func (l *List) Draw(scr uv.Screen, area uv.Rectangle) {
	l.width = area.Dx()
	l.height = area.Dy()
	if l.width <= 0 || l.height <= 0 {
		return
	}
	screen.ClearArea(scr, area)

	// Reserve the scrollbar column before heights are known; the exact
	// decision from measured heights applies next frame. At the boundary
	// the two can disagree for one frame, which is fine.
	reserved := scroll.Reserve(l.barPolicy, len(l.items), l.height)

	prefixWidth := 0
	if l.highlightPrefix != "" {
		prefixWidth = lipgloss.Width(l.highlightPrefix)
	}
	contentWidth := l.width - prefixWidth
	if reserved {
		contentWidth--
	}
	if contentWidth <= 0 {
		return
	}

	l.measure(contentWidth)
	contentHeight := scroll.TotalHeight(l.heights)

	l.scroll.SetViewportHeight(l.height)
	l.scroll.SetContentHeight(contentHeight)

	selStart, selEnd := l.selectionRows()
	l.scroll.Apply(l.policy, selStart, selEnd)

	spans := scroll.Visible(l.heights, l.scroll.Offset(), l.height)

	y := area.Min.Y
	for _, span := range spans {
		item := l.items[span.Index]
		if f, ok := item.(Focusable); ok {
			if l.focused && span.Index == l.selectedIdx {
				f.Focus()
			} else {
				f.Blur()
			}
		}

		itemArea := uv.Rect(area.Min.X+prefixWidth, y, contentWidth, span.Rows)
		drawClipped(scr, itemArea, item, contentWidth, l.heights[span.Index], span.Skip, span.Rows)

		if prefixWidth > 0 && span.Index == l.selectedIdx && span.Skip == 0 {
			marker := l.effectiveHighlight().Render(l.highlightPrefix)
			uv.NewStyledString(marker).Draw(scr, uv.Rect(area.Min.X, y, prefixWidth, 1))
		}

		y += span.Rows
	}

	if reserved && scroll.Needed(l.barPolicy, contentHeight, l.height) {
		barArea := uv.Rect(area.Max.X-1, area.Min.Y, 1, l.height)
		l.bar.Draw(scr, barArea, contentHeight, l.scroll.Offset())
	}
}

// measure recomputes item heights for the given content width, flooring
// every item at one row.
func (l *List) measure(width int) {
	l.heights = l.heights[:0]
	for _, item := range l.items {
		l.heights = append(l.heights, max(1, item.Height(width)))
	}
}

// selectionRows returns the selected item's row range in content space.
func (l *List) selectionRows() (start, end int) {
	for i, h := range l.heights {
		if i == l.selectedIdx {
			return start, start + h
		}
		start += h
	}
	return start, start
}

// drawClipped renders an item into a scratch buffer at its full height
// and copies only the rows [skip, skip+rows) into dst.
func drawClipped(scr uv.Screen, dst uv.Rectangle, item Item, width, height, skip, rows int) {
	buf := uv.NewScreenBuffer(width, height)
	item.Draw(&buf, uv.Rect(0, 0, width, height))

	for row := 0; row < rows; row++ {
		srcY := skip + row
		if srcY >= buf.Height() {
			break
		}
		line := buf.Line(srcY)
		destY := dst.Min.Y + row
		for x := 0; x < len(line) && x < dst.Dx(); x++ {
			scr.SetCell(dst.Min.X+x, destY, line.At(x))
		}
	}
}
