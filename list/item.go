// Package list provides a virtualized flat list component. Only the
// items intersecting the viewport are measured into screen cells per
// frame; item heights are re-measured from the current width on every
// render so wrapped content stays correct across resizes.
package list

import (
	"strings"

	"charm.land/glamour/v2"
	"charm.land/glamour/v2/ansi"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
)

// Item is a single list entry. Items draw themselves into a cell buffer
// and report their own height for a given width, which lets the list
// virtualize over variable-height content.
type Item interface {
	uv.Drawable

	// ID returns a stable identifier for the item.
	ID() string

	// Height returns the item's rendered height in rows at the given
	// width. The list floors the result at one row.
	Height(width int) int
}

// Focusable is an optional item interface. The list focuses the selected
// item and blurs the rest, letting items restyle themselves.
type Focusable interface {
	Focus()
	Blur()
	IsFocused() bool
}

// Filterable is an optional item interface. Items that expose a filter
// value participate in fuzzy filtering; items that don't are dropped
// whenever a filter query is active.
type Filterable interface {
	FilterValue() string
}

// focusState carries focus tracking and the focus/blur style pair shared
// by the built-in item types.
type focusState struct {
	focused    bool
	focusStyle *lipgloss.Style
	blurStyle  *lipgloss.Style
}

// Focus implements Focusable.
func (f *focusState) Focus() { f.focused = true }

// Blur implements Focusable.
func (f *focusState) Blur() { f.focused = false }

// IsFocused implements Focusable.
func (f *focusState) IsFocused() bool { return f.focused }

// style returns the style matching the current focus state, or nil when
// none is configured.
func (f *focusState) style() *lipgloss.Style {
	if f.focused {
		return f.focusStyle
	}
	return f.blurStyle
}

// StringItem is a plain text item, optionally wrapping to the available
// width. Rendered content is cached per width.
type StringItem struct {
	focusState
	id      string
	content string
	wrap    bool
	cache   map[int]string
}

var (
	_ Item       = (*StringItem)(nil)
	_ Focusable  = (*StringItem)(nil)
	_ Filterable = (*StringItem)(nil)
)

// NewStringItem creates a non-wrapping string item.
func NewStringItem(id, content string) *StringItem {
	return &StringItem{
		id:      id,
		content: content,
		cache:   make(map[int]string),
	}
}

// NewWrappingStringItem creates a string item that wraps to the available
// width.
func NewWrappingStringItem(id, content string) *StringItem {
	s := NewStringItem(id, content)
	s.wrap = true
	return s
}

// WithFocusStyles sets the styles applied when the item is focused or
// blurred. Either may be nil.
func (s *StringItem) WithFocusStyles(focus, blur *lipgloss.Style) *StringItem {
	s.focusStyle = focus
	s.blurStyle = blur
	return s
}

// ID implements Item.
func (s *StringItem) ID() string { return s.id }

// FilterValue implements Filterable.
func (s *StringItem) FilterValue() string { return s.content }

// Height implements Item.
func (s *StringItem) Height(width int) int {
	contentWidth := width
	style := s.style()
	if style != nil {
		contentWidth -= style.GetHorizontalFrameSize()
	}

	lines := strings.Count(s.rendered(contentWidth), "\n") + 1
	if style != nil {
		lines += style.GetVerticalFrameSize()
	}
	return lines
}

// Draw implements Item.
func (s *StringItem) Draw(scr uv.Screen, area uv.Rectangle) {
	content := s.rendered(area.Dx())
	if style := s.style(); style != nil {
		content = style.Width(area.Dx()).Render(content)
	}
	uv.NewStyledString(content).Draw(scr, area)
}

func (s *StringItem) rendered(width int) string {
	if !s.wrap || width <= 0 {
		return s.content
	}
	if cached, ok := s.cache[width]; ok {
		return cached
	}
	wrapped := lipgloss.Wrap(s.content, width, "")
	s.cache[width] = wrapped
	return wrapped
}

// markdownMaxWidth caps markdown wrapping for readable line lengths.
const markdownMaxWidth = 120

// MarkdownItem renders markdown through glamour, caching the rendered
// output per width.
type MarkdownItem struct {
	focusState
	id          string
	markdown    string
	styleConfig *ansi.StyleConfig
	maxWidth    int
	cache       map[int]string
}

var (
	_ Item       = (*MarkdownItem)(nil)
	_ Filterable = (*MarkdownItem)(nil)
)

// NewMarkdownItem creates a markdown item.
func NewMarkdownItem(id, markdown string) *MarkdownItem {
	return &MarkdownItem{
		id:       id,
		markdown: markdown,
		maxWidth: markdownMaxWidth,
		cache:    make(map[int]string),
	}
}

// WithStyleConfig sets a custom glamour style.
func (m *MarkdownItem) WithStyleConfig(cfg ansi.StyleConfig) *MarkdownItem {
	m.styleConfig = &cfg
	return m
}

// WithMaxWidth overrides the maximum wrap width.
func (m *MarkdownItem) WithMaxWidth(w int) *MarkdownItem {
	m.maxWidth = w
	return m
}

// ID implements Item.
func (m *MarkdownItem) ID() string { return m.id }

// FilterValue implements Filterable. Filtering matches against the raw
// markdown source, not the rendered output.
func (m *MarkdownItem) FilterValue() string { return m.markdown }

// Height implements Item.
func (m *MarkdownItem) Height(width int) int {
	rendered := m.render(width)
	if style := m.style(); style != nil {
		rendered = style.Render(rendered)
	}
	return strings.Count(rendered, "\n") + 1
}

// Draw implements Item.
func (m *MarkdownItem) Draw(scr uv.Screen, area uv.Rectangle) {
	rendered := m.render(area.Dx())
	if style := m.style(); style != nil {
		rendered = style.Render(rendered)
	}
	uv.NewStyledString(rendered).Draw(scr, area)
}

func (m *MarkdownItem) render(width int) string {
	width = min(width, m.maxWidth)
	if cached, ok := m.cache[width]; ok {
		return cached
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.styleConfig != nil {
		opts = append(opts, glamour.WithStyles(*m.styleConfig))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return m.markdown
	}
	rendered, err := renderer.Render(m.markdown)
	if err != nil {
		return m.markdown
	}

	rendered = strings.TrimRight(rendered, "\n\r ")
	m.cache[width] = rendered
	return rendered
}

// SpacerItem is an empty item occupying vertical space, useful for gaps
// between content items.
type SpacerItem struct {
	id     string
	height int
}

var _ Item = (*SpacerItem)(nil)

// NewSpacerItem creates a spacer of the given height in rows.
func NewSpacerItem(id string, height int) *SpacerItem {
	return &SpacerItem{id: id, height: max(1, height)}
}

// ID implements Item.
func (s *SpacerItem) ID() string { return s.id }

// Height implements Item.
func (s *SpacerItem) Height(int) int { return s.height }

// Draw implements Item. Spacers only clear their area.
func (s *SpacerItem) Draw(scr uv.Screen, area uv.Rectangle) {
	screen.ClearArea(scr, area)
}
