package chromemdb

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"docqa-rag/internal/models"
)

const compress = false

// Manager wraps a chromem-go collection as a record store. chromem-go ranks
// query results by cosine similarity, which is the configured distance for
// the whole pipeline.
type Manager struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewManager opens (or creates) the database at dbPath and the named
// collection inside it. With inMemory set, nothing touches disk; tests use
// this.
func NewManager(dbPath, collectionName string, inMemory bool) (*Manager, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}
	return &Manager{db: db, collection: collection}, nil
}

func (m *Manager) Add(ctx context.Context, records []models.StoredRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("records and vectors length mismatch: %d != %d", len(records), len(vectors))
	}
	docs := make([]chromem.Document, len(records))
	for i, rec := range records {
		docs[i] = chromem.Document{
			ID:      rec.ID,
			Content: rec.PageContent,
			Metadata: map[string]string{
				models.MetadataOriginalContent: rec.OriginalContent,
			},
			Embedding: vectors[i],
		}
	}
	if err := m.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

func (m *Manager) Query(ctx context.Context, vector []float32, k int) ([]models.RetrievedRecord, error) {
	// chromem rejects result counts above the collection size.
	if count := m.collection.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := m.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: vector,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	records := make([]models.RetrievedRecord, len(results))
	for i, res := range results {
		records[i] = models.RetrievedRecord{
			ID:              res.ID,
			PageContent:     res.Content,
			OriginalContent: res.Metadata[models.MetadataOriginalContent],
			Similarity:      res.Similarity,
		}
	}
	return records, nil
}

// Close is a no-op: the persistent database writes through on every add.
func (m *Manager) Close() error {
	return nil
}

// Count reports the number of records in the collection.
func (m *Manager) Count() int {
	return m.collection.Count()
}
