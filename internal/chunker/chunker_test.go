package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa-rag/internal/models"
)

func textEl(text string) models.Element {
	return models.Element{Kind: models.KindText, Text: text}
}

func titleEl(text string) models.Element {
	return models.Element{Kind: models.KindTitle, Text: text}
}

func TestChunkByTitleSingleSection(t *testing.T) {
	body := "The quick brown fox jumps over the lazy dog."
	chunks := ChunkByTitle([]models.Element{titleEl("Intro"), textEl(body)}, DefaultOptions())

	require.Len(t, chunks, 1)
	assert.Equal(t, body, chunks[0].Text)
	assert.Len(t, chunks[0].Elements, 2)
}

func TestChunkByTitleStartsNewChunkAtTitle(t *testing.T) {
	first := strings.Repeat("a", 600)
	second := strings.Repeat("b", 600)
	chunks := ChunkByTitle([]models.Element{
		titleEl("One"), textEl(first),
		titleEl("Two"), textEl(second),
	}, DefaultOptions())

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0].Text)
	assert.Equal(t, second, chunks[1].Text)
}

func TestChunkByTitleHardCeiling(t *testing.T) {
	opts := DefaultOptions()
	var elements []models.Element
	for i := 0; i < 4; i++ {
		elements = append(elements, textEl(strings.Repeat("x", 1500)))
	}
	chunks := ChunkByTitle(elements, opts)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), opts.MaxCharacters)
	}
}

func TestChunkByTitleSoftBreak(t *testing.T) {
	// 2500 chars exceeds the soft limit, so the next element opens a new
	// chunk even though both would fit under the hard ceiling.
	chunks := ChunkByTitle([]models.Element{
		textEl(strings.Repeat("a", 2500)),
		textEl(strings.Repeat("b", 100)),
	}, DefaultOptions())

	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("b", 100), chunks[1].Text)
}

func TestChunkByTitleCombinesSmallChunks(t *testing.T) {
	small := strings.Repeat("s", 100)
	large := strings.Repeat("l", 800)
	chunks := ChunkByTitle([]models.Element{
		titleEl("One"), textEl(small),
		titleEl("Two"), textEl(large),
	}, DefaultOptions())

	require.Len(t, chunks, 1)
	assert.Equal(t, small+"\n\n"+large, chunks[0].Text)
	assert.Len(t, chunks[0].Elements, 4)
}

func TestChunkByTitleTrailingSmallChunkStays(t *testing.T) {
	large := strings.Repeat("l", 800)
	small := strings.Repeat("s", 100)
	chunks := ChunkByTitle([]models.Element{
		titleEl("One"), textEl(large),
		titleEl("Two"), textEl(small),
	}, DefaultOptions())

	require.Len(t, chunks, 2)
	assert.Equal(t, large, chunks[0].Text)
	assert.Equal(t, small, chunks[1].Text)
}

func TestChunkByTitleOversizedElementIsSplit(t *testing.T) {
	opts := Options{MaxCharacters: 100, NewAfterNChars: 80, CombineTextUnderNChars: 10}
	text := strings.Repeat("word ", 60) // 300 chars
	chunks := ChunkByTitle([]models.Element{textEl(text)}, opts)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), opts.MaxCharacters)
		require.Len(t, c.Elements, 1)
	}
}

func TestChunkByTitleKeepsNonTextElements(t *testing.T) {
	table := models.Element{Kind: models.KindTable, Text: "a\tb", TableHTML: "<table></table>"}
	image := models.Element{Kind: models.KindImage, ImageBase64: "aW1n"}
	chunks := ChunkByTitle([]models.Element{
		titleEl("Data"), textEl(strings.Repeat("t", 600)), table, image,
	}, DefaultOptions())

	require.Len(t, chunks, 1)
	kinds := make([]models.ElementKind, 0, len(chunks[0].Elements))
	for _, el := range chunks[0].Elements {
		kinds = append(kinds, el.Kind)
	}
	assert.Contains(t, kinds, models.KindTable)
	assert.Contains(t, kinds, models.KindImage)
}

func TestChunkByTitleSkipsOtherElements(t *testing.T) {
	chunks := ChunkByTitle([]models.Element{
		{Kind: models.KindOther},
		textEl(strings.Repeat("t", 600)),
	}, DefaultOptions())

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Elements, 1)
}

func TestChunkByTitleEmptyInput(t *testing.T) {
	assert.Empty(t, ChunkByTitle(nil, DefaultOptions()))
}

func TestSplitTextPrefersCleanBreaks(t *testing.T) {
	text := strings.Repeat("alpha beta gamma. ", 30)
	pieces := splitText(text, 100)

	require.Greater(t, len(pieces), 1)
	joinedLen := 0
	for _, p := range pieces {
		assert.LessOrEqual(t, len(p), 100)
		joinedLen += len(p)
	}
	assert.Greater(t, joinedLen, 0)
}
