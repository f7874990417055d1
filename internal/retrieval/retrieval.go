package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"

	"docqa-rag/internal/llmservice"
	"docqa-rag/internal/models"
	"docqa-rag/internal/store"
)

// Service answers questions against the vector store: it reformulates the
// question from conversation history, retrieves the top-k records by cosine
// similarity, and rebuilds a multimodal prompt from their stored content.
type Service struct {
	model          llms.Model
	embedder       embeddings.Embedder
	store          store.RecordStore
	topK           int
	maxAttachments int
}

func NewService(model llms.Model, embedder embeddings.Embedder, recordStore store.RecordStore, topK, maxAttachments int) *Service {
	return &Service{
		model:          model,
		embedder:       embedder,
		store:          recordStore,
		topK:           topK,
		maxAttachments: maxAttachments,
	}
}

// Reformulate collapses the conversation into one standalone question. With
// one or no prior user turns the question passes through untouched, without
// a model call. Model failures propagate to the caller.
func (s *Service) Reformulate(ctx context.Context, question string, history []models.ChatTurn) (string, error) {
	var previous []string
	for _, turn := range history {
		if turn.Type == "user" {
			previous = append(previous, turn.Text)
		}
	}
	if len(previous) <= 1 {
		return question, nil
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, models.ReformulateInstruction),
	}
	for _, q := range previous {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, q))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, question))

	resp, err := s.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("reformulating question: %w", err)
	}
	standalone, err := llmservice.ResponseText(resp)
	if err != nil {
		return "", err
	}
	log.Debug().Str("question", standalone).Msg("Reformulated question")
	return standalone, nil
}

// Answer resolves the effective question and generates an answer from the
// retrieved records. Any failure after reformulation is logged and replaced
// by a fixed fallback answer, never an error.
func (s *Service) Answer(ctx context.Context, question string, history []models.ChatTurn) (string, error) {
	effective, err := s.Reformulate(ctx, question, history)
	if err != nil {
		return "", err
	}

	answer, err := s.generate(ctx, effective)
	if err != nil {
		log.Error().Err(err).Msg("Error during retrieval pipeline")
		return models.AnswerFallback, nil
	}
	return answer, nil
}

func (s *Service) generate(ctx context.Context, question string) (string, error) {
	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding question: %w", err)
	}
	results, err := s.store.Query(ctx, vector, s.topK)
	if err != nil {
		return "", fmt.Errorf("querying vector store: %w", err)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, models.AnswerPromptHeader, question)
	var images []string
	for i, rec := range results {
		fmt.Fprintf(&prompt, "--- Document %d ---\n", i+1)

		var content models.SeparatedContent
		if err := json.Unmarshal([]byte(rec.OriginalContent), &content); err != nil {
			return "", fmt.Errorf("parsing stored content for %s: %w", rec.ID, err)
		}
		if content.Text != "" {
			fmt.Fprintf(&prompt, "Text:\n%s\n\n", content.Text)
		}
		if len(content.Tables) > 0 {
			prompt.WriteString("Tables:\n")
			for j, table := range content.Tables {
				fmt.Fprintf(&prompt, "Table %d:\n%s\n", j+1, table)
			}
		}
		prompt.WriteString("\n")
		images = append(images, content.Images...)
	}
	prompt.WriteString(models.AnswerPromptFooter)

	parts := []llms.ContentPart{llms.TextPart(prompt.String())}
	for _, img := range images {
		if s.maxAttachments > 0 && len(parts)-1 >= s.maxAttachments {
			break
		}
		parts = append(parts, llms.ImageURLPart(models.ImageDataURIPrefix+img))
	}
	messages := []llms.MessageContent{
		{Role: llms.ChatMessageTypeHuman, Parts: parts},
	}

	resp, err := s.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return llmservice.ResponseText(resp)
}
