package tokentree

import (
	"fmt"
	"strconv"
)

const kiloThreshold = 1000

// FormatCount renders a token count for display. Values below one thousand
// print as-is; larger values are scaled to thousands with one decimal place and
// a "k" suffix (1536 renders as "1.5k"). The result is display-only and must
// not feed back into arithmetic.
func FormatCount(tokens int) string {
	if tokens >= kiloThreshold {
		return fmt.Sprintf("%.1fk", float64(tokens)/float64(kiloThreshold))
	}
	return strconv.Itoa(tokens)
}

// FillWidth returns the number of filled bar cells for value scaled against
// maxValue. A non-positive maxValue yields zero fill for every value. The fill
// is the floor of the proportional width, except that any nonzero value shows
// at least one cell so usage stays distinguishable from zero. The result never
// exceeds barWidth.
func FillWidth(value int, maxValue int, barWidth int) int {
	if barWidth <= 0 || maxValue <= 0 {
		return 0
	}
	filledCells := int(float64(value) / float64(maxValue) * float64(barWidth))
	if value > 0 && filledCells == 0 {
		filledCells = 1
	}
	if filledCells > barWidth {
		filledCells = barWidth
	}
	return filledCells
}

// MaxLabelWidth returns the widest FormatCount rendering across the whole tree,
// root included, so the renderer can right-align the numeric column without
// recomputing widths per row.
func MaxLabelWidth(node *Node) int {
	widestLabel := len(FormatCount(node.Tokens))
	for _, childNode := range node.Children {
		if childWidth := MaxLabelWidth(childNode); childWidth > widestLabel {
			widestLabel = childWidth
		}
	}
	return widestLabel
}

// MaxLeafTokens returns the largest file token count in the tree. Directory
// aggregates are ignored: bars and percentages scale each leaf against the
// largest leaf, not against the root total.
func MaxLeafTokens(node *Node) int {
	if !node.IsDir {
		return node.Tokens
	}
	largestLeaf := 0
	for _, childNode := range node.Children {
		if childLeaf := MaxLeafTokens(childNode); childLeaf > largestLeaf {
			largestLeaf = childLeaf
		}
	}
	return largestLeaf
}
