package partition

import (
	"context"

	"docqa-rag/internal/models"
)

// Partitioner decomposes a source file into an ordered element sequence.
type Partitioner interface {
	Partition(ctx context.Context, filePath string) ([]models.Element, error)
}

// kindFromTypeName maps an Unstructured element type name onto the closed
// element kind set. Unknown types carrying text are treated as plain text.
func kindFromTypeName(name, text string) models.ElementKind {
	switch name {
	case "Title":
		return models.KindTitle
	case "Table":
		return models.KindTable
	case "Image":
		return models.KindImage
	case "PageBreak":
		return models.KindOther
	default:
		if text == "" {
			return models.KindOther
		}
		return models.KindText
	}
}
