package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"docqa-rag/internal/models"
)

// RecordStore persists records alongside their embeddings and serves
// cosine-similarity queries. Implementations do not deduplicate: adding the
// same content twice stores two independent records.
type RecordStore interface {
	Add(ctx context.Context, records []models.StoredRecord, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, k int) ([]models.RetrievedRecord, error)
	Close() error
}

// Writer embeds each record's page content and persists the batch.
type Writer struct {
	store    RecordStore
	embedder embeddings.Embedder
}

func NewWriter(store RecordStore, embedder embeddings.Embedder) *Writer {
	return &Writer{store: store, embedder: embedder}
}

func (w *Writer) Persist(ctx context.Context, records []models.StoredRecord) error {
	if len(records) == 0 {
		log.Info().Msg("No records to persist")
		return nil
	}
	vectors := make([][]float32, len(records))
	for i, rec := range records {
		vector, err := w.embedder.EmbedQuery(ctx, rec.PageContent)
		if err != nil {
			return fmt.Errorf("embedding record %s: %w", rec.ID, err)
		}
		vectors[i] = vector
	}
	if err := w.store.Add(ctx, records, vectors); err != nil {
		return fmt.Errorf("storing records: %w", err)
	}
	log.Info().Int("records", len(records)).Msg("Persisted records to vector store")
	return nil
}
