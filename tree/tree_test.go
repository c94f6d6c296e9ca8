package tree

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/vlist/scroll"
)

// sampleRoots builds:
//
//	A (expanded)
//	  B (leaf)
//	C (collapsed)
//	  D (leaf)
func sampleRoots() []*Node {
	a := NewNode("A", "a", NewLeaf("B", "b"))
	a.Expanded = true
	c := NewNode("C", "c", NewLeaf("D", "d"))
	return []*Node{a, c}
}

func labels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Node.Label)
	}
	return out
}

func drawTree(tr *Tree, width, height int) string {
	buf := uv.NewScreenBuffer(width, height)
	tr.Draw(&buf, uv.Rect(0, 0, width, height))
	return buf.Render()
}

func TestFlattenSkipsCollapsedSubtrees(t *testing.T) {
	tr := New(sampleRoots()...)

	require.Equal(t, []string{"A", "B", "C"}, labels(tr.Entries()))

	// Expanding C reveals D in pre-order position.
	tr.SetSelected(2)
	tr.Toggle()
	require.Equal(t, []string{"A", "B", "C", "D"}, labels(tr.Entries()))

	tr.Toggle()
	require.Equal(t, []string{"A", "B", "C"}, labels(tr.Entries()))
}

func TestFlattenDepthsAndParents(t *testing.T) {
	roots := sampleRoots()
	tr := New(roots...)

	entries := tr.Entries()
	require.Equal(t, 0, entries[0].Depth)
	require.Nil(t, entries[0].Parent)
	require.Equal(t, 1, entries[1].Depth)
	require.Equal(t, roots[0], entries[1].Parent)
}

func TestExpandOnSelectedNode(t *testing.T) {
	tr := New(sampleRoots()...)

	// Expanding a collapsed inner node reveals its children.
	tr.SetSelected(2)
	tr.Expand()
	require.True(t, tr.SelectedNode().Expanded)
	require.Equal(t, 4, tr.Len())
	require.Equal(t, 2, tr.SelectedIndex())

	// Expanding an already expanded node descends to the first child.
	tr.Expand()
	require.Equal(t, 3, tr.SelectedIndex())
	require.Equal(t, "D", tr.SelectedNode().Label)

	// Expand on a leaf is a no-op.
	tr.Expand()
	require.Equal(t, 3, tr.SelectedIndex())
}

func TestCollapseOnLeafSelectsParent(t *testing.T) {
	tr := New(sampleRoots()...)

	// Select the leaf B and collapse: the selection jumps to A, which
	// then collapses for real.
	tr.SetSelected(1)
	tr.Collapse()
	require.Equal(t, 0, tr.SelectedIndex())
	require.Equal(t, "A", tr.SelectedNode().Label)
	require.True(t, tr.SelectedNode().Expanded)

	tr.Collapse()
	require.False(t, tr.SelectedNode().Expanded)
	require.Equal(t, 2, tr.Len())
}

func TestCollapseOnRootLeafIsNoop(t *testing.T) {
	tr := New(NewLeaf("only", nil))

	tr.Collapse()
	require.Equal(t, 0, tr.SelectedIndex())
	require.Equal(t, "only", tr.SelectedNode().Label)
}

func TestSelectionClampsAfterAncestorCollapse(t *testing.T) {
	inner := NewNode("inner", nil, NewLeaf("deep", nil))
	inner.Expanded = true
	root := NewNode("root", nil, inner)
	root.Expanded = true
	tr := New(root)

	// Select the deepest node, then collapse the root from outside the
	// tree's own operations.
	tr.SetSelected(2)
	require.Equal(t, "deep", tr.SelectedNode().Label)

	root.Expanded = false
	require.Equal(t, "root", tr.SelectedNode().Label)
	require.Equal(t, 0, tr.SelectedIndex())
}

func TestSelectedNodeEmptyTree(t *testing.T) {
	tr := New()
	require.Nil(t, tr.SelectedNode())
	require.Equal(t, 0, tr.Len())

	tr.SelectNext()
	tr.Expand()
	tr.Collapse()
	require.Nil(t, tr.SelectedNode())
}

func TestToggleLeafIsNoop(t *testing.T) {
	tr := New(sampleRoots()...)
	tr.SetSelected(1)

	tr.Toggle()
	require.Equal(t, 3, tr.Len())
	require.False(t, tr.SelectedNode().Expanded)
}

func TestTreeDraw(t *testing.T) {
	tr := New(sampleRoots()...)

	out := drawTree(tr, 20, 5)
	require.Contains(t, out, indicatorExpanded)
	require.Contains(t, out, indicatorLeaf)
	require.Contains(t, out, indicatorCollapsed)
	require.Contains(t, out, "A")
	require.Contains(t, out, "B")
	require.NotContains(t, out, "D")
}

func TestTreeDrawVirtualized(t *testing.T) {
	leaves := make([]*Node, 0, 30)
	for i := range 30 {
		leaves = append(leaves, NewLeaf(fmt.Sprintf("leaf-%02d", i), i))
	}
	root := NewNode("root", nil, leaves...)
	root.Expanded = true
	tr := New(root)

	out := drawTree(tr, 20, 4)
	require.Contains(t, out, "root")
	require.Contains(t, out, "leaf-02")
	require.NotContains(t, out, "leaf-03")

	tr.ScrollBy(10)
	out = drawTree(tr, 20, 4)
	require.NotContains(t, out, "leaf-08")
	require.Contains(t, out, "leaf-09")
	require.Contains(t, out, "leaf-12")
}

func TestTreeAutoScrollFollowsSelection(t *testing.T) {
	leaves := make([]*Node, 0, 10)
	for i := range 10 {
		leaves = append(leaves, NewLeaf(fmt.Sprintf("leaf-%d", i), i))
	}
	root := NewNode("root", nil, leaves...)
	root.Expanded = true
	tr := New(root)
	require.NoError(t, tr.SetScrollPolicy(scroll.PolicyAutoScroll))

	drawTree(tr, 20, 4)
	require.Equal(t, 0, tr.Offset())

	tr.SelectLast()
	drawTree(tr, 20, 4)
	require.Equal(t, 7, tr.Offset())
}

func TestTreeStickyPauseResume(t *testing.T) {
	root := NewNode("root", nil)
	root.Expanded = true
	tr := New(root)
	require.NoError(t, tr.SetScrollPolicy(scroll.PolicySticky))

	grow := func(n int) {
		for i := 0; i < n; i++ {
			root.Children = append(root.Children, NewLeaf(fmt.Sprintf("n%d", len(root.Children)), nil))
		}
	}

	grow(10)
	drawTree(tr, 20, 4)
	require.Equal(t, 7, tr.Offset())

	tr.HandleKey(tea.KeyPressMsg{Code: tea.KeyUp})
	require.True(t, tr.ScrolledAway())
	grow(5)
	drawTree(tr, 20, 4)
	require.Equal(t, 6, tr.Offset())

	tr.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnd})
	drawTree(tr, 20, 4)
	require.False(t, tr.ScrolledAway())
	require.Equal(t, 12, tr.Offset())
}

func TestTreeHandleKeyNavigation(t *testing.T) {
	tr := New(sampleRoots()...)
	tr.SetSize(20, 4)

	require.True(t, tr.HandleKey(tea.KeyPressMsg{Code: tea.KeyDown}))
	require.Equal(t, 1, tr.SelectedIndex())

	// Right on a leaf's parent chain: left jumps to the parent.
	require.True(t, tr.HandleKey(tea.KeyPressMsg{Code: tea.KeyLeft}))
	require.Equal(t, 0, tr.SelectedIndex())

	require.True(t, tr.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnd}))
	require.Equal(t, 2, tr.SelectedIndex())

	require.True(t, tr.HandleKey(tea.KeyPressMsg{Code: tea.KeyRight}))
	require.Equal(t, 4, tr.Len())

	require.False(t, tr.HandleKey(tea.KeyPressMsg{Code: 'x', Text: "x"}))
}

func TestTreeMouse(t *testing.T) {
	tr := New(sampleRoots()...)
	drawTree(tr, 20, 4)

	require.True(t, tr.HandleMouseDown(0, 2))
	require.Equal(t, "C", tr.SelectedNode().Label)

	require.False(t, tr.HandleMouseDown(0, 3))
	require.False(t, tr.HandleMouseDown(-1, 0))
}

func TestTreeWrapHeights(t *testing.T) {
	long := NewLeaf("this label is decidedly too long to fit", nil)
	root := NewNode("root", nil, long)
	root.Expanded = true
	tr := New(root)
	tr.SetWrap(true)

	drawTree(tr, 12, 6)
	require.Greater(t, tr.heights[1], 1)
}
