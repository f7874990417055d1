package main

import (
	"context"
	"fmt"

	"docqa-rag/internal/chunker"
	"docqa-rag/internal/config"
	"docqa-rag/internal/embedding"
	"docqa-rag/internal/ingest"
	"docqa-rag/internal/llmservice"
	"docqa-rag/internal/partition"
	"docqa-rag/internal/retrieval"
	"docqa-rag/internal/store"
	"docqa-rag/internal/store/chromemdb"
	"docqa-rag/internal/store/pgstore"
	"docqa-rag/internal/summary"
)

// app wires the pipelines around one store handle, opened at startup and
// released through Close at shutdown.
type app struct {
	cfg         *config.Config
	store       store.RecordStore
	partitioner partition.Partitioner
	pipeline    *ingest.Pipeline
	retrieval   *retrieval.Service
}

func buildApp(cfg *config.Config) (*app, error) {
	embedder, err := embedding.NewEmbedder(&cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}
	summaryModel, err := llmservice.NewChatModel(&cfg.OpenAI, cfg.OpenAI.SummaryModel)
	if err != nil {
		return nil, fmt.Errorf("initializing summary model: %w", err)
	}
	chatModel, err := llmservice.NewChatModel(&cfg.OpenAI, cfg.OpenAI.ChatModel)
	if err != nil {
		return nil, fmt.Errorf("initializing chat model: %w", err)
	}

	recordStore, err := newRecordStore(cfg)
	if err != nil {
		return nil, err
	}

	var partitioner partition.Partitioner
	if cfg.Partitioner.URL != "" {
		partitioner = partition.NewUnstructuredClient(cfg.Partitioner.URL)
	} else {
		partitioner = partition.NewLocalPartitioner()
	}

	generator := summary.NewGenerator(summaryModel, cfg.Ingest.MaxImageAttachments)
	writer := store.NewWriter(recordStore, embedder)
	pipeline := ingest.NewPipeline(partitioner, generator, writer, chunker.Options{
		MaxCharacters:          cfg.Ingest.MaxCharacters,
		NewAfterNChars:         cfg.Ingest.NewAfterNChars,
		CombineTextUnderNChars: cfg.Ingest.CombineTextUnderNChars,
	})
	retrievalService := retrieval.NewService(chatModel, embedder, recordStore, cfg.Query.TopK, cfg.Ingest.MaxImageAttachments)

	return &app{
		cfg:         cfg,
		store:       recordStore,
		partitioner: partitioner,
		pipeline:    pipeline,
		retrieval:   retrievalService,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func newRecordStore(cfg *config.Config) (store.RecordStore, error) {
	switch cfg.Store.Backend {
	case "postgres":
		sqldb := pgstore.Connect(cfg.Store.PostgresDSN)
		st := pgstore.NewStore(sqldb, cfg.Store.Debug)
		if err := st.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("initializing postgres store: %w", err)
		}
		return st, nil
	case "chromem", "":
		return chromemdb.NewManager(cfg.Store.Path, cfg.Store.Collection, false)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
