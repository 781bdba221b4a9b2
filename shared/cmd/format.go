package cmd

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// FormatSection indents a text section under an optional header.
func FormatSection(header string, content string) string {
	var sb strings.Builder

	if header != "" {
		sb.WriteString(header + ":\n")
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != "" {
			sb.WriteString("  " + line)
		}

		// Partial sections don't get a trailing newline.
		if header != "" || i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}

	if header != "" {
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderTable writes data as a left aligned table with the given header.
func RenderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(true)
	table.SetHeader(header)
	table.AppendBulk(data)
	table.Render()
}
