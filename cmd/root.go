package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docqa-rag/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docqa-rag",
	Short: "Multimodal document question answering backend",
	Long: `docqa-rag ingests PDF documents into a vector store and answers
natural-language questions about them, reconstructing text, tables, and
images from the stored chunks at query time.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", cfgFile).Msg("Config file not found, using defaults")
			return config.Default()
		}
		log.Fatal().Err(err).Msg("Error loading config")
	}
	return cfg
}
