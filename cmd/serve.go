package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docqa-rag/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document QA server",
	Long:  `Starts the HTTP server exposing the /ingest and /query endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		log.Debug().Interface("config", cfg).Msg("Loaded config")

		a, err := buildApp(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error building application")
		}
		defer a.Close()

		srv := server.New(a.pipeline, a.retrieval, cfg.Server.DocsDir)
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.Run(cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
