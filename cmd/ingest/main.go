package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"medirag/internal/config"
	"medirag/internal/dataset"
	"medirag/internal/models"
	"medirag/internal/objectstore"
	"medirag/internal/providers"
	"medirag/internal/search"
	"medirag/internal/vector"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	skipDownload := flag.Bool("skip-download", false, "index an existing local dataset instead of fetching from S3")
	noCache := flag.Bool("no-cache", false, "re-embed every record, ignoring the fingerprint cache")
	validate := flag.Bool("validate", false, "drop records with missing name/hospital/department/specialty before indexing")
	flag.Parse()

	_ = godotenv.Load(".env")
	if missing := config.MissingRequired(); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	cfg := config.Load()
	runID := uuid.NewString()
	ctx := context.Background()
	log.Printf("ingest: run %s started by %s", runID, cfg.Username)

	if !*skipDownload {
		store, err := objectstore.New(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		if err := store.Download(ctx, cfg.S3Bucket, cfg.S3Key, cfg.DatasetPath); err != nil {
			log.Fatalf("ingest: download dataset: %v", err)
		}
	}

	records, stats, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("ingest: load dataset: %v", err)
	}
	if *validate {
		valid := make([]models.DoctorProfile, 0, len(records))
		for _, r := range records {
			if dataset.Validate(r) {
				valid = append(valid, r)
			}
		}
		log.Printf("ingest: run %s: %d of %d records passed validation", runID, len(valid), len(records))
		records = valid
	}

	index, err := vector.NewPineconeIndex(vector.PineconeConfig{
		APIKey:    cfg.PineconeAPIKey,
		IndexName: cfg.IndexName,
		Dimension: cfg.EmbedDim,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := index.Ensure(ctx); err != nil {
		log.Fatal(err)
	}

	engine := search.NewEngine(providers.NewOpenAIProvider(cfg.OpenAIAPIKey), index)
	opts := search.IndexOptions{RunID: runID}
	if !*noCache {
		opts.CachePath = cfg.CachePath
	}
	idxStats, err := engine.IndexProfiles(ctx, records, opts)
	if err != nil {
		log.Fatalf("ingest: index profiles: %v", err)
	}
	log.Printf("ingest: run %s finished: parsed %d/%d rows, indexed %d, cache-skipped %d, failed %d",
		runID, stats.Processed, stats.Total, idxStats.Indexed, idxStats.SkippedCache, idxStats.Failed)
}
