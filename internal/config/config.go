package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Store       StoreConfig       `yaml:"store"`
	Partitioner PartitionerConfig `yaml:"partitioner"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Query       QueryConfig       `yaml:"query"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	DocsDir string `yaml:"docs_dir"`
}

type OpenAIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	SummaryModel   string `yaml:"summary_model"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

type StoreConfig struct {
	Backend     string `yaml:"backend"` // "chromem" or "postgres"
	Path        string `yaml:"path"`
	Collection  string `yaml:"collection"`
	PostgresDSN string `yaml:"postgres_dsn"`
	VectorSize  int    `yaml:"vector_size"`
	Debug       bool   `yaml:"debug"`
}

type PartitionerConfig struct {
	// URL of an Unstructured partition server. Empty means the built-in
	// local partitioner is used instead.
	URL string `yaml:"url"`
}

type IngestConfig struct {
	MaxCharacters          int `yaml:"max_characters"`
	NewAfterNChars         int `yaml:"new_after_n_chars"`
	CombineTextUnderNChars int `yaml:"combine_text_under_n_chars"`
	MaxImageAttachments    int `yaml:"max_image_attachments"`
}

type QueryConfig struct {
	TopK int `yaml:"top_k"`
}

const (
	defaultPort           = "8000"
	defaultDocsDir        = "docs"
	defaultSummaryModel   = "gpt-4o"
	defaultChatModel      = "gpt-4o-mini"
	defaultEmbeddingModel = "text-embedding-3-small"
	defaultStoreBackend   = "chromem"
	defaultStorePath      = "db/chromem_db"
	defaultCollection     = "documents"
	defaultVectorSize     = 1536

	defaultMaxCharacters          = 3000
	defaultNewAfterNChars         = 2400
	defaultCombineTextUnderNChars = 500
	defaultMaxImageAttachments    = 8
	defaultTopK                   = 3
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a config file; secrets still come
// from the environment.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.DocsDir == "" {
		cfg.Server.DocsDir = defaultDocsDir
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.OpenAI.SummaryModel == "" {
		cfg.OpenAI.SummaryModel = defaultSummaryModel
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = defaultChatModel
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = defaultEmbeddingModel
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = defaultStoreBackend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = defaultCollection
	}
	if cfg.Store.PostgresDSN == "" {
		cfg.Store.PostgresDSN = os.Getenv("POSTGRES_DSN")
	}
	if cfg.Store.VectorSize == 0 {
		cfg.Store.VectorSize = defaultVectorSize
	}
	if cfg.Ingest.MaxCharacters == 0 {
		cfg.Ingest.MaxCharacters = defaultMaxCharacters
	}
	if cfg.Ingest.NewAfterNChars == 0 {
		cfg.Ingest.NewAfterNChars = defaultNewAfterNChars
	}
	if cfg.Ingest.CombineTextUnderNChars == 0 {
		cfg.Ingest.CombineTextUnderNChars = defaultCombineTextUnderNChars
	}
	if cfg.Ingest.MaxImageAttachments == 0 {
		cfg.Ingest.MaxImageAttachments = defaultMaxImageAttachments
	}
	if cfg.Query.TopK == 0 {
		cfg.Query.TopK = defaultTopK
	}
}
