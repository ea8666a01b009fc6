package bubbletea

import "github.com/charmbracelet/lipgloss"

// Terminal tab stops sit every eight columns.
const tabStop = 8

// DisplayWidth returns the terminal column width of s. A tab's width depends
// on the column it lands on, not just the rune count, and lipgloss.Width
// counts a tab as zero columns, so widths accumulate rune by rune.
func DisplayWidth(s string) int {
	col := 0
	for _, r := range s {
		col = advanceColumn(col, r)
	}
	return col
}

// advanceColumn returns the column after rendering r at col.
func advanceColumn(col int, r rune) int {
	if r == '\t' {
		return (col/tabStop + 1) * tabStop
	}
	return col + lipgloss.Width(string(r))
}
