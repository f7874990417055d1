package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"docqa-rag/internal/chunker"
	"docqa-rag/internal/helper"
	"docqa-rag/internal/models"
	"docqa-rag/internal/partition"
	"docqa-rag/internal/separator"
	"docqa-rag/internal/store"
)

// Summarizer produces the searchable description stored for chunks that
// carry tables or images.
type Summarizer interface {
	Summarize(ctx context.Context, text string, tables, images []string) (string, error)
}

// Pipeline runs one document end to end: partition, chunk by title,
// separate content, summarize multimodal chunks, embed and persist.
type Pipeline struct {
	partitioner partition.Partitioner
	summarizer  Summarizer
	writer      *store.Writer
	opts        chunker.Options
}

func NewPipeline(partitioner partition.Partitioner, summarizer Summarizer, writer *store.Writer, opts chunker.Options) *Pipeline {
	return &Pipeline{
		partitioner: partitioner,
		summarizer:  summarizer,
		writer:      writer,
		opts:        opts,
	}
}

// Ingest processes one source file and persists a record per chunk. A
// partitioning failure aborts the whole call before anything is persisted;
// a summarization failure degrades only its own record.
func (p *Pipeline) Ingest(ctx context.Context, filePath string) ([]models.StoredRecord, error) {
	elements, err := p.partitioner.Partition(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("partitioning %s: %w", filePath, err)
	}
	log.Info().Int("elements", len(elements)).Str("file", filePath).Msg("Partitioned document")

	chunks := chunker.ChunkByTitle(elements, p.opts)
	log.Info().Int("chunks", len(chunks)).Msg("Created chunks by title")

	records, err := p.BuildRecords(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := p.writer.Persist(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// BuildRecords turns chunks into storable records. Chunks containing tables
// or images get a model-generated summary as their page content; pure-text
// chunks keep their raw text and cost no model call.
func (p *Pipeline) BuildRecords(ctx context.Context, chunks []models.Chunk) ([]models.StoredRecord, error) {
	records := make([]models.StoredRecord, 0, len(chunks))
	for i, chunk := range chunks {
		log.Debug().Int("chunk", i+1).Int("total", len(chunks)).Msg("Processing chunk")
		content := separator.Separate(chunk)

		pageContent := content.Text
		if len(content.Tables) > 0 || len(content.Images) > 0 {
			enhanced, err := p.summarizer.Summarize(ctx, content.Text, content.Tables, content.Images)
			if err != nil {
				log.Error().Err(err).Int("chunk", i+1).Msg("Error generating summary")
				enhanced = ""
			}
			pageContent = enhanced
		}

		raw, err := json.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("serializing chunk content: %w", err)
		}
		id, err := helper.GenerateUUID()
		if err != nil {
			return nil, err
		}
		records = append(records, models.StoredRecord{
			ID:              id,
			PageContent:     pageContent,
			OriginalContent: string(raw),
		})
	}
	return records, nil
}
