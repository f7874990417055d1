package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docqa-rag/internal/chunker"
	"docqa-rag/internal/helper"
)

var ingestDryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a document into the vector store",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		a, err := buildApp(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error building application")
		}
		defer a.Close()

		if ingestDryRun {
			elements, err := a.partitioner.Partition(ctx, args[0])
			if err != nil {
				log.Fatal().Err(err).Msg("Error partitioning document")
			}
			chunks := chunker.ChunkByTitle(elements, chunker.Options{
				MaxCharacters:          cfg.Ingest.MaxCharacters,
				NewAfterNChars:         cfg.Ingest.NewAfterNChars,
				CombineTextUnderNChars: cfg.Ingest.CombineTextUnderNChars,
			})
			records, err := a.pipeline.BuildRecords(ctx, chunks)
			if err != nil {
				log.Fatal().Err(err).Msg("Error building records")
			}
			helper.PrettyPrint(records)
			return
		}

		records, err := a.pipeline.Ingest(ctx, args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Error ingesting document")
		}
		log.Info().Int("records", len(records)).Str("file", args[0]).Msg("Document ingested")
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Build records but do not persist them")
}
