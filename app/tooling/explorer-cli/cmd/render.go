package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	headerStyle    = cellStyle.Bold(true).Foreground(lipgloss.Color("12"))
	highlightStyle = cellStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	titleStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	messageStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("9"))
	footerStyle    = lipgloss.NewStyle().Faint(true)
)

// renderTable draws the rows as a bordered table. The row at highlight, if
// any, is drawn highlighted; pass -1 for none.
func renderTable(headers []string, rows [][]string, highlight int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == highlight:
				return highlightStyle
			}
			return cellStyle
		})

	return t.String()
}

// renderPairs draws key value pairs as a two column table.
func renderPairs(pairs [][2]string) string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return renderTable([]string{"Field", "Value"}, rows, -1)
}

// renderFooter describes the page and search state under a paged table.
func renderFooter(pg int, totalPages int, total int, state string, message string) string {
	var b strings.Builder
	b.WriteString(footerStyle.Render(fmt.Sprintf("page %d/%d  (%d records)  %s", pg, max(totalPages, 1), total, state)))
	if message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(message))
	}
	return b.String()
}

// pagedTable converts the items of a page into table rows and reports the
// row that must be highlighted.
func pagedTable[T any](items []item[T], row func(T) []string) ([][]string, int) {
	rows := make([][]string, len(items))
	highlight := -1
	for i, it := range items {
		rows[i] = append([]string{fmt.Sprint(it.Index)}, row(it.Record)...)
		if it.Highlighted {
			highlight = i
		}
	}
	return rows, highlight
}
