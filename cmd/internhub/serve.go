package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jcabanilla/internhub/internal/ai"
	"github.com/jcabanilla/internhub/internal/config"
	"github.com/jcabanilla/internhub/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the employer posting endpoints and the public job card listing.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfigFile != "" {
		fileCfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	} else {
		cfg = cfg.MergeWithDefaults(config.Config{})
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	var enricher server.Enricher
	if cfg.GeminiAPIKey != "" || cfg.MatchServiceURL != "" {
		aiClient, err := ai.New(ctx, cfg.GeminiAPIKey, cfg.MatchServiceURL, &ai.Options{Model: cfg.GeminiModel})
		if err != nil {
			return fmt.Errorf("failed to create enrichment client: %w", err)
		}
		defer aiClient.Close()
		enricher = aiClient
	} else {
		log.Printf("Enrichment disabled: no GEMINI_API_KEY or MATCH_SERVICE_URL configured")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		JWTSecret:   cfg.JWTSecret,
	}, enricher)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
