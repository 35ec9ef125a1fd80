package tokentree

import (
	"fmt"
	"sort"
	"strings"
)

const (
	middleConnector   = "├── "
	lastConnector     = "└── "
	pipeContinuation  = "│   "
	blankContinuation = "    "
	filledBarCell     = "█"
	emptyBarCell      = "░"
)

// Row is a single rendered line of a token tree. Bar and Percent are populated
// for file rows only; directory rows carry empty fields there.
type Row struct {
	Count   string
	Label   string
	IsDir   bool
	Bar     string
	Percent string
}

// Render walks the aggregated tree depth-first and produces one row per node.
// At every level directory children are visited before file children, and each
// of the two groups is ordered by ascending name, so the same tree always
// renders identically regardless of map iteration order. The root is treated
// as the last sibling of its level: it gets no connector and extends its
// descendants' indent with blank continuation. File rows carry a bar of
// barWidth cells filled proportionally to the largest leaf count, plus that
// proportion as a right-aligned percentage.
func Render(root *Node, barWidth int) []Row {
	maxLeafTokens := MaxLeafTokens(root)
	return appendRows(nil, root, "", true, 0, maxLeafTokens, barWidth)
}

// appendRows emits the row for node and recurses over its ordered children.
func appendRows(rows []Row, node *Node, prefix string, isLastSibling bool, depth int, maxLeafTokens int, barWidth int) []Row {
	connector := ""
	if depth > 0 {
		if isLastSibling {
			connector = lastConnector
		} else {
			connector = middleConnector
		}
	}

	row := Row{
		Count: FormatCount(node.Tokens),
		Label: prefix + connector + node.Name,
		IsDir: node.IsDir,
	}
	if !node.IsDir {
		ratio := 0.0
		if maxLeafTokens > 0 {
			ratio = float64(node.Tokens) / float64(maxLeafTokens)
		}
		filledCells := FillWidth(node.Tokens, maxLeafTokens, barWidth)
		row.Bar = strings.Repeat(filledBarCell, filledCells) + strings.Repeat(emptyBarCell, barWidth-filledCells)
		row.Percent = fmt.Sprintf("%3.0f%%", ratio*100)
	}
	rows = append(rows, row)

	childPrefix := prefix + pipeContinuation
	if isLastSibling {
		childPrefix = prefix + blankContinuation
	}
	orderedChildNodes := orderedChildren(node)
	for childIndex, childNode := range orderedChildNodes {
		isLastChild := childIndex == len(orderedChildNodes)-1
		rows = appendRows(rows, childNode, childPrefix, isLastChild, depth+1, maxLeafTokens, barWidth)
	}
	return rows
}

// orderedChildren returns the node's children with directories first and files
// second, each group sorted by ascending name.
func orderedChildren(node *Node) []*Node {
	var directoryNodes []*Node
	var fileNodes []*Node
	for _, childNode := range node.Children {
		if childNode.IsDir {
			directoryNodes = append(directoryNodes, childNode)
		} else {
			fileNodes = append(fileNodes, childNode)
		}
	}
	sort.Slice(directoryNodes, func(left, right int) bool {
		return directoryNodes[left].Name < directoryNodes[right].Name
	})
	sort.Slice(fileNodes, func(left, right int) bool {
		return fileNodes[left].Name < fileNodes[right].Name
	})
	return append(directoryNodes, fileNodes...)
}
