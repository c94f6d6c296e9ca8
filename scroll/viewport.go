package scroll

// Span describes the visible portion of a single item: which item, how
// many of its leading rows are scrolled out above the viewport, and how
// many rows are actually visible.
type Span struct {
	Index int // item index into the heights slice
	Skip  int // leading rows hidden above the viewport
	Rows  int // visible rows (bottom-clipped for the last span)
}

// Visible computes which items intersect the viewport. heights holds the
// measured row height of every item in order; offset is the scroll
// position and viewportHeight the number of rows available.
//
// The first returned span may skip leading rows, the last may be
// bottom-clipped, and everything in between is fully visible. Degenerate
// input (no items, a non-positive viewport, an offset past the content)
// yields an empty result, never an error.
func Visible(heights []int, offset, viewportHeight int) []Span {
	if len(heights) == 0 || viewportHeight <= 0 || offset < 0 {
		return nil
	}

	var spans []Span
	cum := 0
	remaining := viewportHeight

	for i, h := range heights {
		if h <= 0 {
			continue
		}
		end := cum + h
		if end <= offset {
			// Item ends at or before the viewport top.
			cum = end
			continue
		}

		skip := 0
		if cum < offset {
			skip = offset - cum
		}
		rows := min(h-skip, remaining)
		spans = append(spans, Span{Index: i, Skip: skip, Rows: rows})

		remaining -= rows
		if remaining <= 0 {
			break
		}
		cum = end
	}

	return spans
}

// TotalHeight sums item heights, flooring each at zero.
func TotalHeight(heights []int) int {
	total := 0
	for _, h := range heights {
		if h > 0 {
			total += h
		}
	}
	return total
}
