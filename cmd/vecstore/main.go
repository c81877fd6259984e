// Package main is the entry point for the vecstore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/seekr-labs/vecstore/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "vecstore",
		Short: "Embedding record store with cosine similarity search",
		Long: `vecstore stores fixed-dimension document fragment embeddings and answers
approximate relevance queries by ranking them against a query embedding.

Environment variables (VECSTORE_ prefix):
  DB_URL                Database URL (default: sqlite:///{data_dir}/vecstore.db)
  REDIS_ADDR            Redis host:port (empty: in-process cache)
  DIMENSIONS            Required embedding length (default: 1536)
  SIMILARITY_THRESHOLD  Default search cutoff (default: 0.7)
  CACHE_TTL_SECONDS     Cache entry lifetime (default: 3600)
  CACHE_PREFIX          Cache key namespace (default: vector:)
  SEARCH_LIMIT          Default search result limit (default: 10)
  LOG_LEVEL             DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT            pretty, json (default: pretty)`,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(versionCmd())
	cmd.AddCommand(storeCmd(&envFile))
	cmd.AddCommand(searchCmd(&envFile))
	cmd.AddCommand(statsCmd(&envFile))
	cmd.AddCommand(deleteCmd(&envFile))

	return cmd
}

// loadConfig loads configuration from a .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
