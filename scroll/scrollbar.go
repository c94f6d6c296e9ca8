package scroll

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// BarPolicy controls when a scrollbar column is shown.
type BarPolicy int

const (
	// BarNever hides the scrollbar.
	BarNever BarPolicy = iota
	// BarAlways reserves and draws the scrollbar unconditionally.
	BarAlways
	// BarAsNeeded shows the scrollbar only when the content overflows
	// the viewport. See Reserve for the two-step sizing dance.
	BarAsNeeded
)

// Thumb projects scroll state onto a scrollbar track. It returns the
// thumb's start row and size in track rows, proportional to
// viewport/content. When the content fits in the viewport the thumb spans
// the whole track; callers that prefer to hide it should consult
// BarAsNeeded instead. A non-positive viewport yields an empty thumb.
func Thumb(content, viewport, position int) (start, size int) {
	if viewport <= 0 {
		return 0, 0
	}
	if content <= viewport {
		return 0, viewport
	}

	size = max(1, viewport*viewport/content)
	maxScroll := content - viewport
	position = min(max(0, position), maxScroll)

	// Distribute the remaining track rows across the scroll range so the
	// thumb hits the last row exactly when the position hits maxScroll.
	start = position * (viewport - size) / maxScroll
	return start, size
}

// Reserve is the speculative half of the BarAsNeeded decision. Because
// reserving a scrollbar column changes the width items wrap at (and
// therefore their heights), the column must be reserved before heights
// are known. Reserve guesses from the raw item count: if there are at
// least as many items as viewport rows the content cannot fit, since
// every item is at least one row tall. Needed gives the exact answer once
// heights are measured; at the boundary the two may disagree for a single
// frame, which is tolerated.
func Reserve(policy BarPolicy, itemCount, viewportHeight int) bool {
	switch policy {
	case BarAlways:
		return true
	case BarAsNeeded:
		return itemCount >= viewportHeight && itemCount > 0
	default:
		return false
	}
}

// Needed is the exact half of the BarAsNeeded decision, computed from
// measured content height.
func Needed(policy BarPolicy, contentHeight, viewportHeight int) bool {
	switch policy {
	case BarAlways:
		return true
	case BarAsNeeded:
		return contentHeight > viewportHeight
	default:
		return false
	}
}

// Bar renders a one-column vertical scrollbar. Styles resolve in three
// steps: explicitly set styles win, then styles supplied by an external
// resolver, then the built-in defaults.
type Bar struct {
	thumbStyle *lipgloss.Style
	trackStyle *lipgloss.Style

	resolvedThumb *lipgloss.Style
	resolvedTrack *lipgloss.Style
}

var (
	defaultThumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	defaultTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

const (
	thumbRune = "█"
	trackRune = "░"
)

// SetStyles sets explicit thumb and track styles. Nil keeps the resolved
// or default style for that part.
func (b *Bar) SetStyles(thumb, track *lipgloss.Style) {
	b.thumbStyle = thumb
	b.trackStyle = track
}

// SetResolvedStyles installs externally resolved fallback styles, used
// when no explicit style is set.
func (b *Bar) SetResolvedStyles(thumb, track *lipgloss.Style) {
	b.resolvedThumb = thumb
	b.resolvedTrack = track
}

func (b *Bar) styles() (thumb, track lipgloss.Style) {
	thumb = defaultThumbStyle
	if b.resolvedThumb != nil {
		thumb = *b.resolvedThumb
	}
	if b.thumbStyle != nil {
		thumb = *b.thumbStyle
	}
	track = defaultTrackStyle
	if b.resolvedTrack != nil {
		track = *b.resolvedTrack
	}
	if b.trackStyle != nil {
		track = *b.trackStyle
	}
	return thumb, track
}

// Draw renders the scrollbar into the given area, which should be one
// column wide. content and position come from the owning component's
// scroll state.
func (b *Bar) Draw(scr uv.Screen, area uv.Rectangle, content, position int) {
	height := area.Dy()
	if height <= 0 || area.Dx() <= 0 {
		return
	}

	start, size := Thumb(content, height, position)
	thumbStyle, trackStyle := b.styles()

	lines := make([]string, 0, height)
	for y := range height {
		if y >= start && y < start+size {
			lines = append(lines, thumbStyle.Render(thumbRune))
		} else {
			lines = append(lines, trackStyle.Render(trackRune))
		}
	}

	uv.NewStyledString(strings.Join(lines, "\n")).Draw(scr, area)
}
