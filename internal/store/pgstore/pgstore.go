package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"docqa-rag/internal/models"
)

// Record is the persisted row for the Postgres/pgvector backend. The vector
// width matches text-embedding-3-small.
type Record struct {
	bun.BaseModel `bun:"table:records,alias:r"`

	ID              string    `bun:"id,pk"`
	PageContent     string    `bun:"page_content,notnull"`
	OriginalContent string    `bun:"original_content,notnull"`
	Embedding       []float32 `bun:"embedding,notnull,type:vector(1536)"`
}

// Store is a RecordStore backed by Postgres with the pgvector extension.
type Store struct {
	db *bun.DB
}

func Connect(dsn string) *sql.DB {
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
}

func NewStore(sqldb *sql.DB, debug bool) *Store {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Store{db: db}
}

func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *Store) Add(ctx context.Context, records []models.StoredRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("records and vectors length mismatch: %d != %d", len(records), len(vectors))
	}
	rows := make([]Record, len(records))
	for i, rec := range records {
		rows[i] = Record{
			ID:              rec.ID,
			PageContent:     rec.PageContent,
			OriginalContent: rec.OriginalContent,
			Embedding:       vectors[i],
		}
	}
	_, err := s.db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]models.RetrievedRecord, error) {
	var rows []Record
	// <=> is pgvector's cosine distance operator.
	err := s.db.NewSelect().
		Model(&rows).
		Column("id", "page_content", "original_content").
		OrderExpr("embedding <=> ?", vector).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.RetrievedRecord, len(rows))
	for i, row := range rows {
		records[i] = models.RetrievedRecord{
			ID:              row.ID,
			PageContent:     row.PageContent,
			OriginalContent: row.OriginalContent,
		}
	}
	return records, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
