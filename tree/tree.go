package tree

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/charmbracelet/vlist/scroll"
)

// Expand indicators, one per node state.
const (
	indicatorExpanded  = "▾"
	indicatorCollapsed = "▸"
	indicatorLeaf      = "•"
)

const indentStep = "  "

// Tree is a virtualized tree view with a single selection over the
// flattened sequence of visible nodes. Scroll and selection state are
// per instance.
type Tree struct {
	width, height int

	roots []*Node
	// entries is the flattened view, rebuilt before every operation
	// that consults the structure; it is never trusted across
	// mutations since expand state may have changed.
	entries []Entry

	selectedIdx int
	focused     bool
	wrap        bool

	policy scroll.Policy
	scroll scroll.State

	barPolicy scroll.BarPolicy
	bar       scroll.Bar

	highlightStyle    *lipgloss.Style
	resolvedHighlight *lipgloss.Style

	indicatorStyle lipgloss.Style

	keyMap KeyMap

	heights []int
}

var (
	defaultHighlightStyle = lipgloss.NewStyle().Reverse(true)
	defaultIndicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// New creates a tree view over the given roots.
func New(roots ...*Node) *Tree {
	return &Tree{
		roots:          roots,
		barPolicy:      scroll.BarNever,
		indicatorStyle: defaultIndicatorStyle,
		keyMap:         DefaultKeyMap(),
	}
}

// SetRoots replaces the tree's roots.
func (t *Tree) SetRoots(roots ...*Node) {
	t.roots = roots
	t.refresh()
}

// Roots returns the tree's roots.
func (t *Tree) Roots() []*Node { return t.roots }

// SetSize sets the viewport dimensions used for navigation math before
// the first Draw. Draw overrides both from the area it receives.
func (t *Tree) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.scroll.SetViewportHeight(height)
}

// SetWrap enables wrapping of node labels to the available width.
// Without it every node occupies a single row.
func (t *Tree) SetWrap(wrap bool) { t.wrap = wrap }

// Len returns the number of visible (expanded-path) nodes.
func (t *Tree) Len() int {
	t.refresh()
	return len(t.entries)
}

// Entries returns the current flattened sequence. The result is only
// valid until the next mutation.
func (t *Tree) Entries() []Entry {
	t.refresh()
	return t.entries
}

// Offset returns the current scroll offset.
func (t *Tree) Offset() int { return t.scroll.Offset() }

// ScrolledAway reports whether sticky following is paused.
func (t *Tree) ScrolledAway() bool { return t.scroll.ScrolledAway() }

// Policy returns the active scroll policy.
func (t *Tree) Policy() scroll.Policy { return t.policy }

// SetScrollPolicy selects the scroll policy. Enabling a follow policy
// while a different one is active returns a *scroll.ConfigError.
func (t *Tree) SetScrollPolicy(p scroll.Policy) error {
	if err := scroll.CheckPolicy(t.policy, p); err != nil {
		return err
	}
	t.policy = p
	return nil
}

// SetScrollbarPolicy controls when the scrollbar column is shown.
func (t *Tree) SetScrollbarPolicy(p scroll.BarPolicy) { t.barPolicy = p }

// SetScrollbarStyles sets explicit scrollbar styles; nil values fall
// back to resolved, then built-in styles.
func (t *Tree) SetScrollbarStyles(thumb, track *lipgloss.Style) {
	t.bar.SetStyles(thumb, track)
}

// SetResolvedScrollbarStyles installs externally resolved scrollbar
// styles, consulted when no explicit style is set.
func (t *Tree) SetResolvedScrollbarStyles(thumb, track *lipgloss.Style) {
	t.bar.SetResolvedStyles(thumb, track)
}

// SetHighlightStyle sets the explicit style for the selected row.
func (t *Tree) SetHighlightStyle(style *lipgloss.Style) {
	t.highlightStyle = style
}

// SetResolvedHighlightStyle installs an externally resolved highlight
// style, consulted when no explicit style is set.
func (t *Tree) SetResolvedHighlightStyle(style *lipgloss.Style) {
	t.resolvedHighlight = style
}

func (t *Tree) effectiveHighlight() lipgloss.Style {
	if t.highlightStyle != nil {
		return *t.highlightStyle
	}
	if t.resolvedHighlight != nil {
		return *t.resolvedHighlight
	}
	return defaultHighlightStyle
}

// Focus marks the tree focused.
func (t *Tree) Focus() { t.focused = true }

// Blur removes focus.
func (t *Tree) Blur() { t.focused = false }

// Focused reports whether the tree is focused.
func (t *Tree) Focused() bool { return t.focused }

// Selection.

// SelectedIndex returns the selected index into the flattened sequence.
func (t *Tree) SelectedIndex() int {
	t.refresh()
	return t.selectedIdx
}

// SelectedNode returns the selected node, or nil for an empty tree. The
// stored index is clamped into the current flattened size first: an
// ancestor collapse can shrink the sequence below the previous index,
// and the selection then lands on the last visible node. That is defined
// behavior, not an error.
func (t *Tree) SelectedNode() *Node {
	t.refresh()
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[t.selectedIdx].Node
}

// SetSelected selects the entry at idx, clamping into the valid range.
func (t *Tree) SetSelected(idx int) {
	t.refresh()
	t.selectedIdx = idx
	t.clampSelection()
}

// SelectPrev moves the selection up one visible node.
func (t *Tree) SelectPrev() { t.SetSelected(t.selectedIdx - 1) }

// SelectNext moves the selection down one visible node.
func (t *Tree) SelectNext() { t.SetSelected(t.selectedIdx + 1) }

// SelectFirst selects the first visible node.
func (t *Tree) SelectFirst() { t.SetSelected(0) }

// SelectLast selects the last visible node.
func (t *Tree) SelectLast() {
	t.refresh()
	t.SetSelected(len(t.entries) - 1)
}

// PageUp moves the selection up by one page less a row of overlap.
func (t *Tree) PageUp() { t.SetSelected(t.selectedIdx - t.pageStep()) }

// PageDown moves the selection down by one page less a row of overlap.
func (t *Tree) PageDown() { t.SetSelected(t.selectedIdx + t.pageStep()) }

func (t *Tree) pageStep() int {
	return max(1, t.scroll.ViewportHeight()-1)
}

// Expand handles the "open" direction on the selected node: leaves
// ignore it, a collapsed inner node expands, and an already expanded
// node with children moves the selection to its first child.
func (t *Tree) Expand() {
	t.refresh()
	if len(t.entries) == 0 {
		return
	}
	n := t.entries[t.selectedIdx].Node
	switch {
	case n.IsLeaf():
	case !n.Expanded:
		n.Expanded = true
		t.refresh()
	case len(n.Children) > 0:
		t.SetSelected(t.selectedIdx + 1)
	}
}

// Collapse handles the "close" direction on the selected node: an
// expanded inner node collapses, anything else moves the selection to
// its parent. The parent's index is found by scanning the current
// flattened sequence, which only ever holds visible nodes.
func (t *Tree) Collapse() {
	t.refresh()
	if len(t.entries) == 0 {
		return
	}
	entry := t.entries[t.selectedIdx]
	n := entry.Node
	if !n.IsLeaf() && n.Expanded {
		n.Expanded = false
		t.refresh()
		return
	}
	if entry.Parent == nil {
		return
	}
	for i, e := range t.entries {
		if e.Node == entry.Parent {
			t.SetSelected(i)
			return
		}
	}
}

// Toggle flips the expand state of the selected node; leaves ignore it.
func (t *Tree) Toggle() {
	t.refresh()
	if len(t.entries) == 0 {
		return
	}
	t.entries[t.selectedIdx].Node.Toggle()
	t.refresh()
}

// Scrolling. Same sticky semantics as the list: manual scrolls pause the
// bottom-follow, ScrollToEnd resumes it.

// ScrollBy scrolls by delta rows.
func (t *Tree) ScrollBy(delta int) {
	t.scroll.ScrollBy(delta)
	if t.policy == scroll.PolicySticky {
		t.scroll.Detach()
	}
}

// ScrollToTop scrolls to the first row.
func (t *Tree) ScrollToTop() {
	t.scroll.ScrollToTop()
	if t.policy == scroll.PolicySticky {
		t.scroll.Detach()
	}
}

// ScrollToEnd scrolls to the last row and, under PolicySticky, resumes
// following.
func (t *Tree) ScrollToEnd() {
	t.scroll.ScrollToEnd()
	t.scroll.Reattach()
}

// Mouse interaction.

// HandleMouseDown selects the node under the given viewport-relative
// coordinates. It reports whether a node was hit.
func (t *Tree) HandleMouseDown(x, y int) bool {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return false
	}
	row := t.scroll.Offset() + y
	pos := 0
	for i, h := range t.heights {
		if row < pos+h {
			t.SetSelected(i)
			return true
		}
		pos += h
	}
	return false
}

// HandleWheel scrolls by delta rows in response to a mouse wheel event.
func (t *Tree) HandleWheel(delta int) {
	t.ScrollBy(delta)
}

// Rendering.

// Draw renders the tree into area: flatten, measure, resolve the scroll
// policy, composite the visible rows, draw the scrollbar.
func (t *Tree) Draw(scr uv.Screen, area uv.Rectangle) {
	t.width = area.Dx()
	t.height = area.Dy()
	if t.width <= 0 || t.height <= 0 {
		return
	}
	screen.ClearArea(scr, area)

	t.refresh()

	// Speculative scrollbar reservation; exact decision below once
	// heights are known. One frame of disagreement at the boundary is
	// tolerated.
	reserved := scroll.Reserve(t.barPolicy, len(t.entries), t.height)
	contentWidth := t.width
	if reserved {
		contentWidth--
	}
	if contentWidth <= 0 {
		return
	}

	t.measure(contentWidth)
	contentHeight := scroll.TotalHeight(t.heights)

	t.scroll.SetViewportHeight(t.height)
	t.scroll.SetContentHeight(contentHeight)

	selStart, selEnd := t.selectionRows()
	t.scroll.Apply(t.policy, selStart, selEnd)

	spans := scroll.Visible(t.heights, t.scroll.Offset(), t.height)

	y := area.Min.Y
	for _, span := range spans {
		selected := t.focused && span.Index == t.selectedIdx
		lines := t.renderEntry(t.entries[span.Index], contentWidth, selected)

		end := min(span.Skip+span.Rows, len(lines))
		if span.Skip < end {
			visible := strings.Join(lines[span.Skip:end], "\n")
			rowArea := uv.Rect(area.Min.X, y, contentWidth, end-span.Skip)
			uv.NewStyledString(visible).Draw(scr, rowArea)
		}
		y += span.Rows
	}

	if reserved && scroll.Needed(t.barPolicy, contentHeight, t.height) {
		barArea := uv.Rect(area.Max.X-1, area.Min.Y, 1, t.height)
		t.bar.Draw(scr, barArea, contentHeight, t.scroll.Offset())
	}
}

// refresh rebuilds the flattened sequence and clamps the selection into
// it.
func (t *Tree) refresh() {
	t.entries = Flatten(t.roots)
	t.clampSelection()
}

func (t *Tree) clampSelection() {
	if len(t.entries) == 0 {
		t.selectedIdx = 0
		return
	}
	t.selectedIdx = ordered.Clamp(t.selectedIdx, 0, len(t.entries)-1)
}

// measure recomputes per-entry heights for the given width.
func (t *Tree) measure(width int) {
	t.heights = t.heights[:0]
	for _, e := range t.entries {
		t.heights = append(t.heights, t.entryHeight(e, width))
	}
}

func (t *Tree) entryHeight(e Entry, width int) int {
	if !t.wrap {
		return 1
	}
	line := t.entryText(e)
	if width <= 0 || lipgloss.Width(line) <= width {
		return 1
	}
	return strings.Count(lipgloss.Wrap(line, width, ""), "\n") + 1
}

func (t *Tree) entryText(e Entry) string {
	var b strings.Builder
	for range e.Depth {
		b.WriteString(indentStep)
	}
	switch {
	case e.Node.IsLeaf():
		b.WriteString(indicatorLeaf)
	case e.Node.Expanded:
		b.WriteString(indicatorExpanded)
	default:
		b.WriteString(indicatorCollapsed)
	}
	b.WriteString(" ")
	b.WriteString(e.Node.Label)
	return b.String()
}

// renderEntry renders one entry to styled lines at the given width.
func (t *Tree) renderEntry(e Entry, width int, selected bool) []string {
	text := t.entryText(e)
	if t.wrap && lipgloss.Width(text) > width {
		text = lipgloss.Wrap(text, width, "")
	}

	lines := strings.Split(text, "\n")
	if selected {
		style := t.effectiveHighlight()
		for i, line := range lines {
			lines[i] = style.Render(line)
		}
	} else {
		// Style only the indicator so labels keep their terminal
		// default.
		indent := strings.Repeat(indentStep, e.Depth)
		if rest, ok := strings.CutPrefix(lines[0], indent); ok {
			if ind, label, found := strings.Cut(rest, " "); found {
				lines[0] = indent + t.indicatorStyle.Render(ind) + " " + label
			}
		}
	}
	return lines
}

// selectionRows returns the selected entry's row range in content space.
func (t *Tree) selectionRows() (start, end int) {
	for i, h := range t.heights {
		if i == t.selectedIdx {
			return start, start + h
		}
		start += h
	}
	return start, start
}
