package separator

import (
	"docqa-rag/internal/models"
)

// Separate splits a chunk into its text, table, and image parts. Tables
// fall back to their plain text when no HTML rendering is available; images
// without an inline payload are skipped. Types lists each content category
// present exactly once.
func Separate(chunk models.Chunk) models.SeparatedContent {
	content := models.SeparatedContent{
		Text:   chunk.Text,
		Tables: []string{},
		Images: []string{},
		Types:  []string{},
	}

	seen := make(map[string]bool)
	addType := func(t string) {
		if !seen[t] {
			seen[t] = true
			content.Types = append(content.Types, t)
		}
	}

	for _, el := range chunk.Elements {
		switch el.Kind {
		case models.KindTable:
			html := el.TableHTML
			if html == "" {
				html = el.Text
			}
			content.Tables = append(content.Tables, html)
			addType("table")
		case models.KindImage:
			if el.ImageBase64 == "" {
				continue
			}
			content.Images = append(content.Images, el.ImageBase64)
			addType("image")
		}
	}
	return content
}
