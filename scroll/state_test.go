package scroll

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStateClamping(t *testing.T) {
	var s State
	s.SetViewportHeight(10)
	s.SetContentHeight(25)

	require.Equal(t, 15, s.MaxOffset())

	s.SetOffset(100)
	require.Equal(t, 15, s.Offset())

	s.ScrollBy(-100)
	require.Equal(t, 0, s.Offset())

	s.ScrollToEnd()
	require.Equal(t, 15, s.Offset())
	require.True(t, s.AtBottom())

	// Content shrinking pulls the offset back in range.
	s.SetContentHeight(12)
	require.Equal(t, 2, s.Offset())

	// Content shorter than the viewport pins the offset at zero.
	s.SetContentHeight(5)
	require.Equal(t, 0, s.MaxOffset())
	require.Equal(t, 0, s.Offset())
}

func TestStateDegenerateSizes(t *testing.T) {
	var s State
	s.SetViewportHeight(-3)
	s.SetContentHeight(-7)

	require.Equal(t, 0, s.ViewportHeight())
	require.Equal(t, 0, s.ContentHeight())
	require.Equal(t, 0, s.MaxOffset())

	s.ScrollBy(5)
	require.Equal(t, 0, s.Offset())
}

func TestStateEnsureVisible(t *testing.T) {
	var s State
	s.SetViewportHeight(4)
	s.SetContentHeight(20)

	// Range below the viewport: scroll down just enough.
	s.EnsureVisible(6, 8)
	require.Equal(t, 4, s.Offset())

	// Already visible: no movement.
	s.EnsureVisible(5, 7)
	require.Equal(t, 4, s.Offset())

	// Range above the viewport: align its top edge.
	s.EnsureVisible(1, 2)
	require.Equal(t, 1, s.Offset())

	// Range taller than the viewport aligns the top edge too.
	s.EnsureVisible(10, 18)
	require.Equal(t, 10, s.Offset())
}

func TestApplyAutoScrollFollowsSelection(t *testing.T) {
	var s State
	s.SetViewportHeight(3)
	s.SetContentHeight(5)

	// Selection on the last row of five single-row items.
	s.Apply(PolicyAutoScroll, 4, 5)
	require.Equal(t, 2, s.Offset())

	// Selection back on the first row.
	s.Apply(PolicyAutoScroll, 0, 1)
	require.Equal(t, 0, s.Offset())
}

func TestApplyScrollToEndOverridesManualScroll(t *testing.T) {
	var s State
	s.SetViewportHeight(4)
	s.SetContentHeight(10)

	s.SetOffset(2)
	s.Apply(PolicyScrollToEnd, 0, 0)
	require.Equal(t, 6, s.Offset())

	// Content growth keeps the viewport pinned to the end.
	s.SetContentHeight(14)
	s.Apply(PolicyScrollToEnd, 0, 0)
	require.Equal(t, 10, s.Offset())
}

func TestApplyStickyPausesAndResumes(t *testing.T) {
	var s State
	s.SetViewportHeight(4)
	s.SetContentHeight(10)

	// Follows the end while attached.
	s.Apply(PolicySticky, 0, 0)
	require.Equal(t, 6, s.Offset())
	require.False(t, s.ScrolledAway())

	// A manual scroll away pauses following; new content does not move
	// the viewport.
	s.ScrollBy(-3)
	s.Detach()
	s.SetContentHeight(20)
	s.Apply(PolicySticky, 0, 0)
	require.Equal(t, 3, s.Offset())
	require.True(t, s.ScrolledAway())

	// Scrolling back to the bottom resumes following.
	s.ScrollToEnd()
	s.Apply(PolicySticky, 0, 0)
	require.False(t, s.ScrolledAway())
	require.Equal(t, 16, s.Offset())

	s.SetContentHeight(25)
	s.Apply(PolicySticky, 0, 0)
	require.Equal(t, 21, s.Offset())
}

func TestReattachWithoutOffsetChange(t *testing.T) {
	var s State
	s.SetViewportHeight(4)
	s.SetContentHeight(10)
	s.Apply(PolicySticky, 0, 0)

	s.ScrollBy(-5)
	s.Detach()
	require.True(t, s.ScrolledAway())

	// Reattach leaves the offset alone; the next Apply computes the
	// bottom, picking up content that grew in between.
	s.Reattach()
	require.Equal(t, 1, s.Offset())

	s.SetContentHeight(30)
	s.Apply(PolicySticky, 0, 0)
	require.Equal(t, 26, s.Offset())
}

func TestCheckPolicy(t *testing.T) {
	// Enabling from idle, disabling, and re-enabling are all fine.
	require.NoError(t, CheckPolicy(PolicyNone, PolicySticky))
	require.NoError(t, CheckPolicy(PolicySticky, PolicyNone))
	require.NoError(t, CheckPolicy(PolicySticky, PolicySticky))

	// A second follow policy on top of an active one is rejected.
	err := CheckPolicy(PolicySticky, PolicyAutoScroll)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, PolicySticky, cfgErr.Active)
	require.Equal(t, PolicyAutoScroll, cfgErr.Requested)
	require.Contains(t, err.Error(), "autoscroll")
	require.Contains(t, err.Error(), "sticky")
}

func TestStateOffsetAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s State
		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for range steps {
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				s.SetViewportHeight(rapid.IntRange(-5, 100).Draw(t, "viewport"))
			case 1:
				s.SetContentHeight(rapid.IntRange(-5, 1000).Draw(t, "content"))
			case 2:
				s.ScrollBy(rapid.IntRange(-200, 200).Draw(t, "delta"))
			case 3:
				s.SetOffset(rapid.IntRange(-200, 1200).Draw(t, "offset"))
			case 4:
				s.ScrollToEnd()
			case 5:
				start := rapid.IntRange(-10, 1000).Draw(t, "start")
				s.EnsureVisible(start, start+rapid.IntRange(0, 20).Draw(t, "rows"))
			}

			if s.Offset() < 0 || s.Offset() > s.MaxOffset() {
				t.Fatalf("offset %d out of range [0, %d]", s.Offset(), s.MaxOffset())
			}
		}
	})
}
