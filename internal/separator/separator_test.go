package separator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa-rag/internal/models"
)

func TestSeparatePureText(t *testing.T) {
	chunk := models.Chunk{
		Text: "plain paragraph",
		Elements: []models.Element{
			{Kind: models.KindText, Text: "plain paragraph"},
		},
	}
	content := Separate(chunk)

	assert.Equal(t, "plain paragraph", content.Text)
	assert.Empty(t, content.Tables)
	assert.Empty(t, content.Images)
	assert.Empty(t, content.Types)
}

func TestSeparateTableUsesHTML(t *testing.T) {
	chunk := models.Chunk{
		Text: "see table",
		Elements: []models.Element{
			{Kind: models.KindTable, Text: "a b", TableHTML: "<table><tr><td>a</td></tr></table>"},
		},
	}
	content := Separate(chunk)

	require.Len(t, content.Tables, 1)
	assert.Equal(t, "<table><tr><td>a</td></tr></table>", content.Tables[0])
	assert.Equal(t, []string{"table"}, content.Types)
}

func TestSeparateTableFallsBackToText(t *testing.T) {
	chunk := models.Chunk{
		Elements: []models.Element{
			{Kind: models.KindTable, Text: "raw table text"},
		},
	}
	content := Separate(chunk)

	require.Len(t, content.Tables, 1)
	assert.Equal(t, "raw table text", content.Tables[0])
}

func TestSeparateSkipsImagesWithoutPayload(t *testing.T) {
	chunk := models.Chunk{
		Elements: []models.Element{
			{Kind: models.KindImage},
			{Kind: models.KindImage, ImageBase64: "aW1hZ2U="},
		},
	}
	content := Separate(chunk)

	require.Len(t, content.Images, 1)
	assert.Equal(t, "aW1hZ2U=", content.Images[0])
	assert.Equal(t, []string{"image"}, content.Types)
}

func TestSeparateTypesAreDeduplicated(t *testing.T) {
	chunk := models.Chunk{
		Elements: []models.Element{
			{Kind: models.KindTable, TableHTML: "<table>1</table>"},
			{Kind: models.KindTable, TableHTML: "<table>2</table>"},
			{Kind: models.KindImage, ImageBase64: "aQ=="},
			{Kind: models.KindImage, ImageBase64: "ag=="},
		},
	}
	content := Separate(chunk)

	assert.Len(t, content.Tables, 2)
	assert.Len(t, content.Images, 2)
	assert.ElementsMatch(t, []string{"table", "image"}, content.Types)
}

func TestSeparateWithoutElements(t *testing.T) {
	content := Separate(models.Chunk{Text: "orphan chunk"})

	assert.Equal(t, "orphan chunk", content.Text)
	assert.NotNil(t, content.Tables)
	assert.NotNil(t, content.Images)
	assert.Empty(t, content.Tables)
	assert.Empty(t, content.Images)
	assert.Empty(t, content.Types)
}

func TestSeparatedContentJSONRoundTrip(t *testing.T) {
	original := Separate(models.Chunk{
		Text: "text with extras",
		Elements: []models.Element{
			{Kind: models.KindTable, TableHTML: "<table></table>"},
			{Kind: models.KindImage, ImageBase64: "cGF5bG9hZA=="},
		},
	})

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded models.SeparatedContent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}
