package chunker

import (
	"strings"

	"docqa-rag/internal/models"
)

const (
	defaultMaxCharacters          = 3000
	defaultNewAfterNChars         = 2400
	defaultCombineTextUnderNChars = 500
)

// Options controls chunk sizing. MaxCharacters is a hard ceiling,
// NewAfterNChars is a soft break point, and CombineTextUnderNChars merges
// undersized chunks into their neighbors.
type Options struct {
	MaxCharacters          int
	NewAfterNChars         int
	CombineTextUnderNChars int
}

func DefaultOptions() Options {
	return Options{
		MaxCharacters:          defaultMaxCharacters,
		NewAfterNChars:         defaultNewAfterNChars,
		CombineTextUnderNChars: defaultCombineTextUnderNChars,
	}
}

func (o Options) normalized() Options {
	if o.MaxCharacters <= 0 {
		o.MaxCharacters = defaultMaxCharacters
	}
	if o.NewAfterNChars <= 0 || o.NewAfterNChars > o.MaxCharacters {
		o.NewAfterNChars = o.MaxCharacters
	}
	if o.CombineTextUnderNChars < 0 {
		o.CombineTextUnderNChars = 0
	}
	return o
}

// ChunkByTitle groups elements into chunks, starting a new chunk at every
// title element once the current chunk is non-trivial and whenever the size
// limits are reached. Titles delimit chunks but do not contribute to the
// chunk text. Each chunk keeps the original elements it was built from so
// tables and images survive chunking.
func ChunkByTitle(elements []models.Element, opts Options) []models.Chunk {
	opts = opts.normalized()

	var chunks []models.Chunk
	var texts []string
	var els []models.Element
	length := 0

	flush := func() {
		if len(els) == 0 {
			return
		}
		chunks = append(chunks, models.Chunk{
			Text:     strings.Join(texts, "\n\n"),
			Elements: els,
		})
		texts = nil
		els = nil
		length = 0
	}

	for _, el := range elements {
		if el.Kind == models.KindOther {
			continue
		}

		if el.Kind == models.KindTitle {
			if length > 0 {
				flush()
			}
			els = append(els, el)
			continue
		}

		// An element too large for any chunk is split into chunks of its own.
		if len(el.Text) > opts.MaxCharacters {
			flush()
			for _, piece := range splitText(el.Text, opts.MaxCharacters) {
				chunks = append(chunks, models.Chunk{
					Text:     piece,
					Elements: []models.Element{el},
				})
			}
			continue
		}

		grown := length
		if el.Text != "" {
			grown += len(el.Text)
			if length > 0 {
				grown += len("\n\n")
			}
		}
		if grown > opts.MaxCharacters || length > opts.NewAfterNChars {
			flush()
		}

		els = append(els, el)
		if el.Text != "" {
			texts = append(texts, el.Text)
			if length > 0 {
				length += len("\n\n")
			}
			length += len(el.Text)
		}
	}
	flush()

	return combineSmall(chunks, opts)
}

// combineSmall merges chunks shorter than CombineTextUnderNChars into the
// following chunk, as long as the merged text stays under the hard ceiling.
func combineSmall(chunks []models.Chunk, opts Options) []models.Chunk {
	if opts.CombineTextUnderNChars == 0 || len(chunks) < 2 {
		return chunks
	}

	var out []models.Chunk
	var pending *models.Chunk
	for _, c := range chunks {
		if pending != nil {
			merged := mergeChunks(*pending, c)
			if len(merged.Text) <= opts.MaxCharacters {
				c = merged
			} else {
				out = append(out, *pending)
			}
			pending = nil
		}
		if len(c.Text) < opts.CombineTextUnderNChars {
			pc := c
			pending = &pc
			continue
		}
		out = append(out, c)
	}
	if pending != nil {
		// A trailing small chunk has no following chunk to merge into.
		out = append(out, *pending)
	}
	return out
}

func mergeChunks(a, b models.Chunk) models.Chunk {
	text := a.Text
	if text != "" && b.Text != "" {
		text += "\n\n"
	}
	text += b.Text
	elements := make([]models.Element, 0, len(a.Elements)+len(b.Elements))
	elements = append(elements, a.Elements...)
	elements = append(elements, b.Elements...)
	return models.Chunk{Text: text, Elements: elements}
}

// splitText cuts content into pieces of at most maxChars, preferring to
// break at a space, newline, or period near the end of each piece.
func splitText(content string, maxChars int) []string {
	content = strings.TrimSpace(content)
	if content == "" || maxChars <= 0 {
		return nil
	}
	if len(content) <= maxChars {
		return []string{content}
	}

	var pieces []string
	start := 0
	for start < len(content) {
		end := start + maxChars
		if end >= len(content) {
			end = len(content)
		} else {
			lookBack := maxChars / 10
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}
		piece := strings.TrimSpace(content[start:end])
		if piece != "" {
			pieces = append(pieces, piece)
		}
		start = end
	}
	return pieces
}
