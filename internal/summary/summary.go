package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"docqa-rag/internal/llmservice"
	"docqa-rag/internal/models"
)

// Generator produces a searchable description of a chunk's text, tables,
// and images through a single multimodal chat completion at temperature 0.
type Generator struct {
	model          llms.Model
	maxAttachments int
}

func NewGenerator(model llms.Model, maxAttachments int) *Generator {
	return &Generator{model: model, maxAttachments: maxAttachments}
}

func (g *Generator) Summarize(ctx context.Context, text string, tables, images []string) (string, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, models.SummaryPromptHeader, text)
	if len(tables) > 0 {
		prompt.WriteString("Tables present:\n")
		for i, table := range tables {
			fmt.Fprintf(&prompt, "Table %d:\n%s\n\n", i+1, table)
		}
	}
	prompt.WriteString(models.SummaryPromptTask)

	parts := []llms.ContentPart{llms.TextPart(prompt.String())}
	for _, img := range images {
		if g.maxAttachments > 0 && len(parts)-1 >= g.maxAttachments {
			break
		}
		parts = append(parts, llms.ImageURLPart(models.ImageDataURIPrefix+img))
	}

	messages := []llms.MessageContent{
		{Role: llms.ChatMessageTypeHuman, Parts: parts},
	}
	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return llmservice.ResponseText(resp)
}
