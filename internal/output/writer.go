// Package output renders token-tree rows as aligned text columns.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/skillctx/skx/internal/tokentree"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiGreen   = "\x1b[32m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"

	columnGap = "  "
)

// Options controls tree rendering.
type Options struct {
	BarWidth int
	Colorize bool
}

// WriteTree renders the aggregated tree to writer, one aligned row per node:
// a right-aligned token count, the connector-prefixed name, and, for file rows,
// the proportional bar and percentage columns.
func WriteTree(writer io.Writer, root *tokentree.Node, options Options) error {
	rows := tokentree.Render(root, options.BarWidth)
	countWidth := tokentree.MaxLabelWidth(root)
	labelWidth := 0
	for _, row := range rows {
		if width := utf8.RuneCountInString(row.Label); width > labelWidth {
			labelWidth = width
		}
	}
	for _, row := range rows {
		if _, writeError := fmt.Fprintln(writer, formatRow(row, countWidth, labelWidth, options.Colorize)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// RenderText returns the plain-text rendering of the aggregated tree, suitable
// for clipboard export.
func RenderText(root *tokentree.Node, barWidth int) string {
	var builder strings.Builder
	_ = WriteTree(&builder, root, Options{BarWidth: barWidth})
	return builder.String()
}

// formatRow lays out one row. Padding is computed on the plain text before any
// color codes are applied so styled and unstyled output align identically.
func formatRow(row tokentree.Row, countWidth int, labelWidth int, colorize bool) string {
	countField := fmt.Sprintf("%*s", countWidth, row.Count)
	labelField := row.Label
	if colorize {
		countColor := ansiGreen
		if row.IsDir {
			countColor = ansiBlue
		}
		countField = countColor + countField + ansiReset
		if row.IsDir {
			labelField = ansiBold + row.Label + ansiReset
		}
	}
	if row.IsDir {
		return countField + " " + labelField
	}
	padding := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(row.Label))
	barField := row.Bar
	if colorize {
		barField = ansiMagenta + barField + ansiReset
	}
	return countField + " " + labelField + padding + columnGap + barField + " " + row.Percent
}
