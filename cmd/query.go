package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask a question against the ingested documents",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		a, err := buildApp(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error building application")
		}
		defer a.Close()

		answer, err := a.retrieval.Answer(context.Background(), args[0], nil)
		if err != nil {
			log.Fatal().Err(err).Msg("Error answering question")
		}

		log.Info().Msg("Question: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
		fmt.Printf("%s\n\n", args[0])

		log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
		fmt.Printf("%s\n\n", answer)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
