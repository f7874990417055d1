package partition

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// tableHTML renders tabular rows as an HTML table by round-tripping through
// a GFM markdown table. The first row is used as the header row.
func tableHTML(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return "", nil
	}

	var md strings.Builder
	writeRow := func(row []string) {
		md.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = strings.ReplaceAll(row[i], "|", `\|`)
			}
			md.WriteString(" " + cell + " |")
		}
		md.WriteString("\n")
	}

	writeRow(rows[0])
	md.WriteString("|")
	for i := 0; i < width; i++ {
		md.WriteString(" --- |")
	}
	md.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}

	converter := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := converter.Convert([]byte(md.String()), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
