package scroll

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/require"
)

func TestThumbProportions(t *testing.T) {
	// 10 rows of viewport over 100 rows of content: a tenth of the track.
	start, size := Thumb(100, 10, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 1, size)

	// At the end of the scroll range the thumb touches the last row.
	start, size = Thumb(100, 10, 90)
	require.Equal(t, 10, start+size)

	// Halfway through lands roughly in the middle.
	start, _ = Thumb(100, 10, 45)
	require.Equal(t, 4, start)
}

func TestThumbNeverSmallerThanOneRow(t *testing.T) {
	_, size := Thumb(100000, 5, 0)
	require.Equal(t, 1, size)
}

func TestThumbFittingContent(t *testing.T) {
	// Content that fits spans the whole track.
	start, size := Thumb(3, 10, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 10, size)

	start, size = Thumb(0, 0, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 0, size)
}

func TestThumbMonotonic(t *testing.T) {
	prev := -1
	for pos := 0; pos <= 90; pos++ {
		start, _ := Thumb(100, 10, pos)
		require.GreaterOrEqual(t, start, prev, "position %d", pos)
		prev = start
	}
}

func TestReserveAndNeeded(t *testing.T) {
	require.False(t, Reserve(BarNever, 100, 10))
	require.False(t, Needed(BarNever, 100, 10))

	require.True(t, Reserve(BarAlways, 0, 10))
	require.True(t, Needed(BarAlways, 0, 10))

	// AsNeeded reserves speculatively from the item count.
	require.True(t, Reserve(BarAsNeeded, 10, 10))
	require.False(t, Reserve(BarAsNeeded, 9, 10))
	require.False(t, Reserve(BarAsNeeded, 0, 0))

	// The exact decision uses measured heights.
	require.True(t, Needed(BarAsNeeded, 11, 10))
	require.False(t, Needed(BarAsNeeded, 10, 10))
}

func TestBarDraw(t *testing.T) {
	var b Bar
	buf := uv.NewScreenBuffer(1, 10)
	b.Draw(&buf, uv.Rect(0, 0, 1, 10), 100, 0)

	out := buf.Render()
	require.Contains(t, out, thumbRune)
	require.Contains(t, out, trackRune)

	// Thumb at the top for position zero.
	first := strings.Split(out, "\n")[0]
	require.Contains(t, first, thumbRune)
}

func TestBarStylePrecedence(t *testing.T) {
	var b Bar

	thumb, track := b.styles()
	require.Equal(t, defaultThumbStyle, thumb)
	require.Equal(t, defaultTrackStyle, track)

	resolved := lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	b.SetResolvedStyles(&resolved, nil)
	thumb, track = b.styles()
	require.Equal(t, resolved, thumb)
	require.Equal(t, defaultTrackStyle, track)

	explicit := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	b.SetStyles(&explicit, nil)
	thumb, _ = b.styles()
	require.Equal(t, explicit, thumb)
}
