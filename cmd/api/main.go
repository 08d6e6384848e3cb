package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"medirag/internal/api"
	"medirag/internal/config"
	"medirag/internal/providers"
	"medirag/internal/qa"
	"medirag/internal/search"
	"medirag/internal/vector"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	if missing := config.MissingRequired(); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	cfg := config.Load()

	table, err := api.LoadTable(cfg.TablePath)
	if err != nil {
		log.Fatalf("load professor table: %v", err)
	}

	index, err := vector.NewPineconeIndex(vector.PineconeConfig{
		APIKey:    cfg.PineconeAPIKey,
		IndexName: cfg.IndexName,
		Dimension: cfg.EmbedDim,
	})
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := index.Ensure(ctx); err != nil {
		log.Fatal(err)
	}

	openai := providers.NewOpenAIProvider(cfg.OpenAIAPIKey)
	composer := qa.NewComposer(search.NewEngine(openai, index), openai)
	srv := api.NewServer(cfg, table, composer)

	log.Printf("medirag api listening on %s index=%q professors=%d", cfg.APIAddr, cfg.IndexName, table.Len())
	if err := http.ListenAndServe(cfg.APIAddr, srv.Routes()); err != nil {
		log.Fatal(err)
	}
}
